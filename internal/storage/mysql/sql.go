package mysql

// Legs (hotel/flight/car) share the details column; traveler and masked payment are JSON as well.
const upsertBookingSQL = `
INSERT INTO bookings
  (booking_reference, user_id, booking_type, status, booking_date, total_price, taxes, traveler_info, payment_info, details)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  status        = IF(bookings.status = 'cancelled', bookings.status, VALUES(status)),
  total_price   = VALUES(total_price),
  taxes         = VALUES(taxes),
  traveler_info = VALUES(traveler_info),
  payment_info  = VALUES(payment_info),
  details       = VALUES(details),
  updated_at    = CURRENT_TIMESTAMP
`

// Cancelled is terminal.
const updateStatusSQL = `
UPDATE bookings
SET status = ?, updated_at = CURRENT_TIMESTAMP
WHERE booking_reference = ? AND status <> 'cancelled'
`

const bookingExistsSQL = `SELECT 1 FROM bookings WHERE booking_reference = ?`

const bookingColumns = `
  booking_reference, user_id, booking_type, status, booking_date, total_price, taxes,
  traveler_info, payment_info, details
`

const getBookingSQL = `SELECT` + bookingColumns + `FROM bookings WHERE booking_reference = ? AND user_id = ?`

// Newest first; aligns with index (user_id, booking_date).
const listBookingsSQL = `SELECT` + bookingColumns + `FROM bookings WHERE user_id = ? ORDER BY booking_date DESC, id DESC`

// Note: `timestamp` is a keyword; keep it quoted everywhere.
const insertEventSQL = "INSERT INTO event_logs\n  (event_type, description, user_id, session_id, `timestamp`, metadata, source)\nVALUES\n  (?, ?, ?, ?, ?, ?, ?)"

const eventColumns = "id, event_type, description, user_id, session_id, `timestamp`, metadata, source"

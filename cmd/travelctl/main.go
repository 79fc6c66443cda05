// Command travelctl is a small client of the booking API. It keeps the token, the user and
// the failed telemetry queue in a local JSON store, like the web client keeps them in local storage.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"travel_booking/internal/adapters/localstore"
	"travel_booking/internal/adapters/observability"
	"travel_booking/internal/adapters/travelapi"
	"travel_booking/internal/app"
	"travel_booking/internal/domain"
	"travel_booking/internal/shared"
	"travel_booking/internal/telemetry"
)

const keySession = "travel_session"

const usage = `usage: travelctl [-api URL] [-store PATH] <command> [args]

commands:
  login                      demo login; stores the token and user
  logout                     forget the token and user
  whoami                     show the current user
  search [flags]             hotel search (-destination, -checkin, -checkout, -guests, -rooms, -sort, -page)
  hotel <id>                 show one hotel
  bookings                   list your bookings
  booking <id>               show one booking
  cancel <id>                cancel a booking
  log <type> <text> [k=v..]  send a telemetry event (click, custom, navigate)
  failed-events              show parked telemetry events
  retry-events               resend parked telemetry events
`

func main() {
	_ = godotenv.Load()
	cfg, err := shared.Load()
	log.Logger = observability.NewLogger(os.Stderr, "cli", cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	fs := flag.NewFlagSet("travelctl", flag.ExitOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	api := fs.String("api", cfg.APIBase, "API base URL")
	store := fs.String("store", cfg.LocalStorePath, "local store file")
	_ = fs.Parse(os.Args[1:])
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	kv, err := localstore.Open(*store)
	if err != nil {
		log.Fatal().Err(err).Msg("open local store")
	}
	cl, err := travelapi.New(*api, kv, cfg.ClientRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("client setup")
	}
	cl.SetSession(session(ctx, kv))
	tl, stopTelemetry := startTelemetry(ctx, cl, kv, cfg)
	tl.SetPageURL("cli://" + fs.Arg(0))

	err = run(ctx, cl, tl, fs.Arg(0), fs.Args()[1:])
	stopTelemetry()
	if err != nil {
		log.Fatal().Err(err).Str("command", fs.Arg(0)).Msg("failed")
	}
}

// startTelemetry runs the event logger for the command's lifetime, with the scheduled resend of
// parked events. stop flushes what is still queued and waits for the sender to exit.
func startTelemetry(ctx context.Context, sender domain.EventSender, kv domain.KV, cfg shared.Config) (*telemetry.Logger, func()) {
	tl := telemetry.New(ctx, sender, kv, telemetry.Config{
		Workers:       cfg.TelemetryWorkers,
		FlushInterval: cfg.TelemetryFlushInterval,
	}, log.Logger)
	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return tl.Run(gctx) })
	return tl, func() {
		tl.Flush(ctx)
		cancel()
		if err := g.Wait(); err != nil {
			log.Warn().Err(err).Msg("telemetry sender")
		}
	}
}

// session returns the API session pinned in the local store, minting one on first use.
func session(ctx context.Context, kv domain.KV) string {
	if id, ok, _ := kv.Get(ctx, keySession); ok && id != "" {
		return id
	}
	id := app.NewSessionID()
	if err := kv.Set(ctx, keySession, id); err != nil {
		log.Warn().Err(err).Msg("persist session id")
	}
	return id
}

func run(ctx context.Context, cl *travelapi.Client, tl *telemetry.Logger, cmd string, args []string) error {
	switch cmd {
	case "login":
		u, err := cl.DemoLogin(ctx)
		if err != nil {
			return err
		}
		tl.SetUserID(u.ID)
		tl.LogClick("Demo login", "demo-login-button", domain.Point{})
		return printJSON(u)

	case "logout":
		tl.LogClick("Logout", "logout-button", domain.Point{})
		return cl.Logout(ctx)

	case "whoami":
		u, err := cl.CurrentUser(ctx)
		if err != nil {
			return err
		}
		return printJSON(u)

	case "search":
		sf := flag.NewFlagSet("search", flag.ExitOnError)
		dest := sf.String("destination", "", "city, country or hotel name")
		in := sf.String("checkin", "", "check-in date (yyyy-mm-dd)")
		out := sf.String("checkout", "", "check-out date (yyyy-mm-dd)")
		guests := sf.Int("guests", app.DefaultGuests, "guests")
		rooms := sf.Int("rooms", app.DefaultRooms, "rooms")
		sort := sf.String("sort", "", "price|rating|distance")
		page := sf.Int("page", 1, "page")
		_ = sf.Parse(args)
		q := url.Values{}
		q.Set("destination", *dest)
		q.Set("checkIn", *in)
		q.Set("checkOut", *out)
		q.Set("guests", fmt.Sprint(*guests))
		q.Set("rooms", fmt.Sprint(*rooms))
		q.Set("page", fmt.Sprint(*page))
		if *sort != "" {
			q.Set("sortBy", *sort)
		}
		tl.LogNavigation("Search hotels", domain.EventGoToURL, "/search?"+q.Encode())
		res, err := cl.SearchHotels(ctx, q)
		if err != nil {
			return err
		}
		return printJSON(res)

	case "hotel":
		if len(args) != 1 {
			return fmt.Errorf("hotel needs an id")
		}
		tl.LogNavigation("View hotel", domain.EventGoToURL, "/hotels/"+args[0])
		h, err := cl.GetHotel(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(h)

	case "bookings":
		bs, err := cl.GetUserBookings(ctx)
		if err != nil {
			return err
		}
		return printJSON(bs)

	case "booking":
		if len(args) != 1 {
			return fmt.Errorf("booking needs an id")
		}
		b, err := cl.GetBooking(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(b)

	case "cancel":
		if len(args) != 1 {
			return fmt.Errorf("cancel needs an id")
		}
		tl.LogClick("Cancel booking "+args[0], "cancel-booking-button", domain.Point{})
		b, err := cl.CancelBooking(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(b)

	case "log":
		if len(args) < 2 {
			return fmt.Errorf("log needs a type and a text")
		}
		data := map[string]any{}
		for _, kvp := range args[2:] {
			k, v, _ := strings.Cut(kvp, "=")
			data[k] = v
		}
		switch args[0] {
		case "click":
			tl.LogClick(args[1], fmt.Sprint(data["element"]), domain.Point{})
		case "navigate":
			tl.LogNavigation(args[1], domain.EventGoToURL, fmt.Sprint(data["url"]))
		case "custom":
			tl.LogCustom(args[1], fmt.Sprint(data["action"]), data)
		default:
			return fmt.Errorf("unknown event type %q", args[0])
		}
		return nil

	case "failed-events":
		q, err := tl.Failed(ctx)
		if err != nil {
			return err
		}
		return printJSON(q)

	case "retry-events":
		tl.Flush(ctx)
		resent, remaining, err := tl.RetryFailedEvents(ctx)
		if err != nil {
			return err
		}
		return printJSON(map[string]int{"resent": resent, "remaining": remaining})
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

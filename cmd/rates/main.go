package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"tcmbrates/internal/application"
	"tcmbrates/internal/bootstrap"
	"tcmbrates/internal/domain"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

type quoteOut struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
	Unit int    `json:"unit"`
	Buy  string `json:"buy"`
	Sell string `json:"sell"`
}

type ratesOut struct {
	Date          string     `json:"date"`
	PublishedDate string     `json:"published_date,omitempty"`
	Quotes        []quoteOut `json:"quotes"`
}

func main() {
	log := bootstrap.ProvideLogger()
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := bootstrap.InitRatesService(bootstrap.ProvideConfig(), log)
	if err != nil {
		log.Fatal("init rates service", zap.Error(err))
	}
	if err := run(ctx, svc, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "rates:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *application.RatesService, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("rates", flag.ContinueOnError)
	dateFlag := fs.String("date", "", "day to look up as YYYY-MM-DD (default today)")
	code := fs.String("code", "", "print a single currency, e.g. USD")
	all := fs.Bool("all", false, "include every currency in the feed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	date := svc.Today()
	if *dateFlag != "" {
		d, err := time.ParseInLocation(time.DateOnly, *dateFlag, svc.Location())
		if err != nil {
			return fmt.Errorf("invalid -date %q: want YYYY-MM-DD", *dateFlag)
		}
		date = d
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if *code != "" {
		q, err := svc.GetCurrency(ctx, date, *code)
		if err != nil {
			return err
		}
		return enc.Encode(toQuoteOut(q))
	}

	rates, err := svc.GetRates(ctx, date, *all)
	if err != nil {
		return err
	}
	out := ratesOut{Date: rates.Date.Format(time.DateOnly), Quotes: make([]quoteOut, 0, len(rates.Quotes))}
	if !rates.PublishedDate.IsZero() {
		out.PublishedDate = rates.PublishedDate.Format(time.DateOnly)
	}
	for _, q := range rates.Quotes {
		out.Quotes = append(out.Quotes, toQuoteOut(q))
	}
	return enc.Encode(out)
}

func toQuoteOut(q domain.CurrencyQuote) quoteOut {
	return quoteOut{Code: q.Code, Name: q.Name, Unit: q.Unit, Buy: q.Buy, Sell: q.Sell}
}

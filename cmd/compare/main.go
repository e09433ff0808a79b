package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/market_arb/config"
	"github.com/Gunvolt24/market_arb/internal/app"
	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/pkg/logger"
	"github.com/Gunvolt24/market_arb/pkg/validate"
)

// CLI: одно сравнение двух рынков (или пачка запросов из файла), результат в JSON на stdout.
func main() {
	sourceID := flag.Int64("source", 0, "source location id")
	sourceKind := flag.String("source-kind", "region", "source kind: region|station|structure")
	destID := flag.Int64("dest", 0, "destination location id")
	destKind := flag.String("dest-kind", "region", "destination kind: region|station|structure")
	token := flag.String("token", os.Getenv("ARB_TOKEN"), "bearer token for structure markets")
	filterPath := flag.String("filter", "", "path to filter configuration (.json)")
	requestsPath := flag.String("requests", "", "path to comparison requests (.json or .jsonl); overrides -source/-dest")
	formatStr := flag.String("format", "auto", "requests format: auto|json|jsonl")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fatalf("load config: %v", err)
	}

	v := validate.NewRequestValidator()
	requests, err := buildRequests(v, *requestsPath, validate.InputFormat(*formatStr), *filterPath,
		*sourceID, *sourceKind, *destID, *destKind, *token)
	if err != nil {
		fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fatalf("logger: %v", err)
	}
	defer func() { _ = cleanupLogger() }()

	store, closeStore, err := app.OpenStore(ctx, &cfg, logg, nil)
	if err != nil {
		fatalf("open store: %v", err)
	}
	defer closeStore()

	svc := app.NewPipeline(&cfg, store, logg, nil).Service
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	failed := 0
	for _, req := range requests {
		session := svc.NewSession(ctx)
		res := domain.ComparisonResult{SessionID: session, Source: req.Source, Dest: req.Dest}

		opps, err := svc.Compare(ctx, session, req.Source, req.Dest, req.Filter, req.Token)
		if err != nil {
			failed++
			res.Error = err.Error()
			res.Opportunities = []domain.Opportunity{}
		} else {
			res.Opportunities = opps
		}
		if err := svc.EndSession(context.WithoutCancel(ctx), session); err != nil {
			logg.Warnf(ctx, "end session %s: %v", session, err)
		}
		if err := enc.Encode(res); err != nil {
			fatalf("write result: %v", err)
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "compare: %d of %d requests failed\n", failed, len(requests))
		os.Exit(1)
	}
}

func buildRequests(
	v *validate.RequestValidator,
	requestsPath string, format validate.InputFormat,
	filterPath string,
	sourceID int64, sourceKind string,
	destID int64, destKind string,
	token string,
) ([]domain.ComparisonRequest, error) {
	if requestsPath != "" {
		res, err := validate.RequestsFromFile(v, requestsPath, format)
		if err != nil {
			return nil, fmt.Errorf("requests: %w (%s)", err, res.Summary())
		}
		fmt.Fprintf(os.Stderr, "requests: %s\n", res.Summary())
		return res.Requests, nil
	}

	var filterRaw []byte
	if filterPath != "" {
		raw, err := os.ReadFile(filterPath)
		if err != nil {
			return nil, fmt.Errorf("read filter: %w", err)
		}
		filterRaw = raw
	}
	cfg, err := validate.FilterFromJSON(v, filterRaw)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	sk, err := domain.ParseLocationKind(sourceKind)
	if err != nil {
		return nil, fmt.Errorf("source-kind: %w", err)
	}
	dk, err := domain.ParseLocationKind(destKind)
	if err != nil {
		return nil, fmt.Errorf("dest-kind: %w", err)
	}

	req := domain.ComparisonRequest{
		Source: domain.Location{ID: sourceID, Kind: sk},
		Dest:   domain.Location{ID: destID, Kind: dk},
		Filter: cfg,
		Token:  token,
	}
	if err := v.Validate(&req); err != nil {
		return nil, err
	}
	return []domain.ComparisonRequest{req}, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "compare: "+format+"\n", args...)
	os.Exit(1)
}

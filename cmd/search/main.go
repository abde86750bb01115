package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ImZritel/y-cpp-my/internal/engine"
	"github.com/ImZritel/y-cpp-my/internal/index"
	"github.com/ImZritel/y-cpp-my/internal/pagination"
	"github.com/ImZritel/y-cpp-my/internal/printer"
	"github.com/ImZritel/y-cpp-my/pkg/config"
	"github.com/ImZritel/y-cpp-my/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	stopWordsFlag := flag.String("stop-words", "a an and in is it of on or the to with", "space-separated stop words")
	queryFlag := flag.String("query", "", "query to run against the demo corpus")
	parallel := flag.Bool("parallel", false, "use the parallel ranking/matching policy")
	pageSize := flag.Int("page-size", 2, "results per printed page")
	matchID := flag.Int("match-id", 0, "document id to run MatchDocument against")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := engine.New(strings.Fields(*stopWordsFlag), cfg)
	if err != nil {
		slog.Error("failed to build search engine", "error", err)
		os.Exit(1)
	}

	if cfg.Metrics.Enabled {
		shutdown := eng.Metrics().StartServer(cfg.Metrics.Port)
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(shutdownCtx)
		}()
	}

	loadDemoCorpus(ctx, eng)

	policy := engine.Sequential
	if *parallel {
		policy = engine.Parallel
	}

	query := *queryFlag
	if query == "" {
		query = "curly hair and brown eyes -dog"
	}

	results, err := eng.FindTopDocuments(ctx, query, engine.Predicate{}, policy)
	if err != nil {
		slog.Error("search failed", "query", query, "error", err)
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	fmt.Fprintf(w, "Results for query [%s]:\n", query)
	for _, page := range pagination.Paginate(results, *pageSize) {
		printer.ScoredDocs(w, page)
		fmt.Fprintln(w, "Page break")
	}

	terms, status, err := eng.MatchDocument(ctx, query, *matchID, policy)
	if err != nil {
		slog.Error("match failed", "query", query, "document_id", *matchID, "error", err)
	} else {
		printer.MatchResult(w, *matchID, status, terms)
	}

	removed := eng.RemoveDuplicates(ctx)
	fmt.Fprintf(w, "Before duplicates removed: %d documents\n", eng.DocCount()+len(removed))
	fmt.Fprintf(w, "%d duplicates removed\n", len(removed))

	printer.RequestLogSummary(w, eng.RequestLog().NoResultCount(), eng.RequestLog().Len())
}

func loadDemoCorpus(ctx context.Context, eng *engine.SearchEngine) {
	docs := []struct {
		id      int
		text    string
		status  index.StatusTag
		ratings []int
	}{
		{0, "white cat and fashionable collar", index.StatusActual, []int{8, -3}},
		{1, "fluffy cat fluffy tail", index.StatusActual, []int{7, 2, 7}},
		{2, "groomed dog expressive eyes", index.StatusActual, []int{5, -12, 2, 1}},
		{3, "groomed starling eugene", index.StatusBanned, []int{9}},
	}
	for _, d := range docs {
		if err := eng.AddDocument(ctx, d.id, d.text, d.status, d.ratings); err != nil {
			slog.Error("failed to index demo document", "id", d.id, "error", err)
		}
	}
}

// Command journal drives the facade from the terminal: it loads the day's
// diary entry from redis, runs one AI operation against a running gateway,
// and writes the result back.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"rokufun-core/internal/adapter/store"
	"rokufun-core/internal/config"
	"rokufun-core/internal/domain/entity"
	"rokufun-core/internal/journal"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	gateway := flag.String("gateway", "http://localhost:8080", "base URL of the journal gateway")
	date := flag.String("date", time.Now().Format("2006-01-02"), "journal date (YYYY-MM-DD)")
	op := flag.String("op", "feedback", "operation: feedback | story | image | extract")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	journalStore := store.NewRedisStore(rdb)

	logs, err := journalStore.LoadLogs(ctx)
	if err != nil {
		log.Fatalf("failed to load journal: %v", err)
	}
	day, ok := logs[*date]
	if !ok {
		// Extraction may be the first thing that creates the day's entry.
		if *op != "extract" {
			log.Fatalf("no journal entry for %s", *date)
		}
		day = entity.DailyLog{Date: *date}
	}

	settings, err := journalStore.LoadSettings(ctx)
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	jc := journal.NewClient(*gateway)

	switch *op {
	case "feedback":
		feedback, err := jc.GenerateDailyFeedback(ctx, day, settings.Personality, pastLogs(logs, *date))
		if err != nil {
			exitOp("feedback", err)
		}
		day.AIFeedback = feedback
		day.UpdatedAt = time.Now().UnixMilli()
		logs[*date] = day
		if err := journalStore.SaveLogs(ctx, logs); err != nil {
			log.Fatalf("failed to save journal: %v", err)
		}
		printJSON(feedback)

	case "story":
		story, err := jc.GenerateParallelStory(ctx, day)
		if err != nil {
			exitOp("story", err)
		}
		if story == nil {
			log.Fatalf("entry %s has no evening record yet", *date)
		}
		printJSON(story)

	case "image":
		desc, err := jc.GenerateSouvenirImage(ctx, day)
		if err != nil {
			exitOp("image", err)
		}
		if desc == "" {
			log.Fatalf("entry %s has no evening record yet", *date)
		}
		fmt.Println(desc)

	case "extract":
		messages, err := readTranscript(os.Stdin)
		if err != nil {
			log.Fatalf("failed to read transcript: %v", err)
		}
		entry, err := jc.ExtractLogFromChat(ctx, messages)
		if err != nil {
			exitOp("extract", err)
		}
		day = applyExtraction(day, entry)
		day.UpdatedAt = time.Now().UnixMilli()
		logs[*date] = day
		if err := journalStore.SaveLogs(ctx, logs); err != nil {
			log.Fatalf("failed to save journal: %v", err)
		}
		printJSON(entry)

	default:
		log.Fatalf("unknown operation %q", *op)
	}
}

// readTranscript decodes the chat transcript the UI exports: a JSON array of
// {"role","text"} turns.
func readTranscript(r io.Reader) ([]journal.Message, error) {
	var messages []journal.Message
	if err := json.NewDecoder(r).Decode(&messages); err != nil {
		return nil, fmt.Errorf("decoding transcript: %w", err)
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("transcript is empty")
	}
	return messages, nil
}

// applyExtraction folds the extracted fields into the day's evening record.
// Fields the extraction left blank keep whatever the user wrote by hand.
func applyExtraction(day entity.DailyLog, entry *entity.EveningEntry) entity.DailyLog {
	if day.Evening == nil {
		day.Evening = &entity.EveningEntry{}
	}
	if len(entry.GoodThings) > 0 {
		day.Evening.GoodThings = entry.GoodThings
	}
	if entry.Kindness != "" {
		day.Evening.Kindness = entry.Kindness
	}
	if entry.Insights != "" {
		day.Evening.Insights = entry.Insights
	}
	if entry.FollowUpQuestion != "" {
		day.Evening.FollowUpQuestion = entry.FollowUpQuestion
	}
	return day
}

// pastLogs returns earlier entries that already carry feedback, oldest first.
func pastLogs(logs map[string]entity.DailyLog, today string) []entity.DailyLog {
	var history []entity.DailyLog
	for date, l := range logs {
		if date < today && l.AIFeedback != nil {
			history = append(history, l)
		}
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Date < history[j].Date })
	return history
}

func exitOp(op string, err error) {
	var extractionErr *journal.ExtractionError
	if errors.As(err, &extractionErr) {
		// Degrade, don't crash: the entry survives without this feature.
		log.Printf("%s unavailable this round: %v", op, err)
		os.Exit(0)
	}
	log.Fatalf("%s failed: %v", op, err)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
	fmt.Println(string(data))
}

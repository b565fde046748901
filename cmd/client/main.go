package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dcastillo/iot-telemetry/internal/adapter"
	"github.com/dcastillo/iot-telemetry/internal/logger"
	"github.com/dcastillo/iot-telemetry/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const requestTimeout = 15 * time.Second

func main() {
	printBuildInfo()

	log := logger.NewLogger("iot-telemetry-client")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := run(ctx, command, args); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("command failed")
	}
}

const usage = `usage: client <command> [flags]

commands:
  register  create a new account
  login     authenticate and print a bearer token
  send      upload a single temperature reading
  latest    print the most recent reading for a device
  query     print readings matching optional filters`

func run(ctx context.Context, command string, args []string) error {
	flags := flag.NewFlagSet(command, flag.ExitOnError)

	serverAddress := flags.String("s", "http://localhost:8080", "server base URL")
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	token := flags.String("token", "", "bearer token for authenticated commands")
	deviceID := flags.String("device", "", "device identifier")
	temperature := flags.Float64("temp", 0, "temperature reading in degrees Celsius")
	timestamp := flags.String("ts", "", "reading timestamp, RFC 3339 (default: now)")
	start := flags.String("start", "", "query start timestamp, RFC 3339")
	end := flags.String("end", "", "query end timestamp, RFC 3339")

	if err := flags.Parse(args); err != nil {
		return err
	}

	serverAdapter := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: *serverAddress,
		Timeout: requestTimeout,
	})
	serverAdapter.SetToken(*token)

	switch command {
	case "register":
		if err := serverAdapter.Register(ctx, *email, *password); err != nil {
			return err
		}
		fmt.Println("registered")
		return nil

	case "login":
		signedToken, err := serverAdapter.Login(ctx, *email, *password)
		if err != nil {
			return err
		}
		fmt.Println(signedToken)
		return nil

	case "send":
		when := time.Now().UTC()
		if *timestamp != "" {
			parsed, err := time.Parse(time.RFC3339, *timestamp)
			if err != nil {
				return fmt.Errorf("parse -ts: %w", err)
			}
			when = parsed
		}

		message, err := serverAdapter.SendReadings(ctx, []models.Reading{{
			DeviceID:    *deviceID,
			Temperature: *temperature,
			Timestamp:   when,
		}})
		if err != nil {
			return err
		}
		fmt.Println(message)
		return nil

	case "latest":
		reading, err := serverAdapter.Latest(ctx, *deviceID)
		if err != nil {
			return err
		}
		return printJSON(reading)

	case "query":
		filter := models.ReadingFilter{DeviceID: *deviceID}
		if *start != "" {
			parsed, err := time.Parse(time.RFC3339, *start)
			if err != nil {
				return fmt.Errorf("parse -start: %w", err)
			}
			filter.Start = &parsed
		}
		if *end != "" {
			parsed, err := time.Parse(time.RFC3339, *end)
			if err != nil {
				return fmt.Errorf("parse -end: %w", err)
			}
			filter.End = &parsed
		}

		readings, err := serverAdapter.Query(ctx, filter)
		if err != nil {
			return err
		}
		return printJSON(readings)

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	fmt.Println(string(encoded))
	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

// Command exchange-probe queries the identity provider exchange from the
// command line and prints the decoded responses as JSON.
//
//	exchange-probe user <username>
//	exchange-probe users <username>...
//	exchange-probe updated [-since RFC3339] [username...]
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mattermost/idp-exchange-attribute-sync/server/exchange"
)

const usage = `usage:
  exchange-probe user <username>
  exchange-probe users <username>...
  exchange-probe updated [-since RFC3339] [username...]`

var errUsage = errors.New("invalid arguments")

// probeClient is the part of *exchange.Client the commands call.
type probeClient interface {
	GetUser(username string) (*exchange.UserResponse, error)
	GetUsers(usernames []string) (*exchange.UsersResponse, error)
	GetUpdatedUsers(usernames []string, since time.Time) (*exchange.UpdatedUsersResponse, error)
}

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set up logging")
	}

	client := exchange.NewClient(
		cfg.Endpoint,
		cfg.Token,
		exchange.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		exchange.WithLogger(exchangeLogger{logger: logger}),
	)

	if err := run(client, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}

		entry := logger.WithError(err)
		var clientErr *exchange.ClientError
		if errors.As(err, &clientErr) && clientErr.Code != 0 {
			entry = entry.WithField("code", clientErr.Code)
		}
		entry.Fatal("Exchange request failed")
	}
}

// run executes the command in args against client and writes the response
// to out.
func run(client probeClient, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	var (
		response interface{}
		err      error
	)
	switch args[0] {
	case "user":
		if len(args) != 2 {
			return errUsage
		}
		response, err = client.GetUser(args[1])
	case "users":
		if len(args) < 2 {
			return errUsage
		}
		response, err = client.GetUsers(args[1:])
	case "updated":
		usernames, since, parseErr := parseUpdated(args[1:])
		if parseErr != nil {
			return parseErr
		}
		response, err = client.GetUpdatedUsers(usernames, since)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode response")
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func parseUpdated(args []string) ([]string, time.Time, error) {
	flags := flag.NewFlagSet("updated", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	sinceFlag := flags.String("since", "", "only report users changed after this RFC 3339 time")
	if err := flags.Parse(args); err != nil {
		return nil, time.Time{}, errors.Wrap(errUsage, err.Error())
	}

	var since time.Time
	if *sinceFlag != "" {
		parsed, err := time.Parse(time.RFC3339, *sinceFlag)
		if err != nil {
			return nil, time.Time{}, errors.Wrap(errUsage, "since must be an RFC 3339 time")
		}
		since = parsed
	}

	return flags.Args(), since, nil
}

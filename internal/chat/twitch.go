// Package chat connects the bot to Twitch: an IRC reader that turns chat
// lines into placement commands, and an OAuth credential provider backed by
// a token checkpoint file.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	twitch "github.com/gempir/go-twitch-irc/v4"

	"github.com/vovakirdan/cubecast/internal/core"
	"github.com/vovakirdan/cubecast/internal/engine"
)

// tokenRefreshPeriod is how often the source re-checks its credential.
// The provider caches until near expiry, so most checks are free.
const tokenRefreshPeriod = time.Minute

// TokenProvider supplies a currently-valid OAuth access token.
// Implemented by Credentials.
type TokenProvider interface {
	Token() (string, error)
}

// Source reads one Twitch channel and pushes every parseable chat line into
// the event queue as a placement command. Malformed lines are dropped with a
// debug log; the chat user gets no feedback either way.
//
// The IRC client reconnects on its own and re-sends its credential each
// attempt, so the source keeps the client's token current for the whole run
// instead of baking in the startup token.
type Source struct {
	client  *twitch.Client
	channel string
	creds   TokenProvider
	queue   *engine.Queue
	logger  *log.Logger

	refreshEvery time.Duration
	applyToken   func(string)
}

// NewSource creates a chat source for the given channel. The credential is
// fetched from creds at connect time and refreshed for the life of Run.
func NewSource(loginName, channel string, creds TokenProvider, q *engine.Queue, logger *log.Logger) *Source {
	client := twitch.NewClient(loginName, "")
	return &Source{
		client:       client,
		channel:      channel,
		creds:        creds,
		queue:        q,
		logger:       logger,
		refreshEvery: tokenRefreshPeriod,
		applyToken:   client.SetIRCToken,
	}
}

// Run connects and reads until the context is cancelled. The wait for the
// next message is unbounded; quiet chat is not an error.
func (s *Source) Run(ctx context.Context) error {
	if err := s.refreshToken(); err != nil {
		return err
	}

	s.client.OnPrivateMessage(func(msg twitch.PrivateMessage) {
		cmd, err := core.Parse(msg.Message)
		if err != nil {
			s.logger.Debug("dropping chat line", "from", msg.User.Name, "error", err)
			return
		}
		s.logger.Debug("placement received",
			"from", msg.User.Name, "x", cmd.X, "y", cmd.Y, "z", cmd.Z)
		s.queue.Push(engine.CommandEvent{Cmd: cmd})
	})

	s.client.OnConnect(func() {
		s.logger.Info("connected to chat", "channel", s.channel)
	})

	s.client.Join(s.channel)

	go s.refreshLoop(ctx)
	go func() {
		<-ctx.Done()
		s.client.Disconnect()
	}()

	if err := s.client.Connect(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("chat: connection lost: %w", err)
	}
	return nil
}

// refreshLoop keeps the client credential valid across reconnects until the
// context is cancelled. A failed refresh is logged and retried next period;
// the connection keeps its previous token meanwhile.
func (s *Source) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(s.refreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.refreshToken(); err != nil {
				s.logger.Error("token refresh failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// refreshToken fetches the current access token and hands it to the IRC
// client for its next (re)connect attempt.
func (s *Source) refreshToken() error {
	tok, err := s.creds.Token()
	if err != nil {
		return err
	}
	s.applyToken("oauth:" + tok)
	return nil
}

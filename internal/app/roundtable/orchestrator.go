package roundtable

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Yash7702/perspective-pals/internal/domain"
	"github.com/Yash7702/perspective-pals/internal/observability"
)

// Notices appended to the transcript in place of replies. The store only
// ever holds displayable text, never raw errors.
const (
	missingCredentialNotice = "Error: no API key is configured for the response provider. Please set your API key and try again."
	batchFailureNotice      = "Sorry, I encountered an error while generating responses. Please try again later."
)

// AppendFunc is how the orchestrator writes into the message store. Each
// call must be visible in the conversation's transcript immediately, so
// later personas in the same turn can see earlier replies.
type AppendFunc func(content string, sender domain.Sender)

// Orchestrator sequences generation calls across the selected personas for
// one user turn: selection order is call order is response order. One
// persona failing must not abort the rest of the batch.
type Orchestrator struct {
	llm      domain.GenerationClient
	personas *domain.Registry

	// pacing between calls, injectable for tests
	delay func() time.Duration
	sleep func(time.Duration)
}

func NewOrchestrator(llm domain.GenerationClient, personas *domain.Registry) *Orchestrator {
	return &Orchestrator{
		llm:      llm,
		personas: personas,
		delay:    typingDelay,
		sleep:    time.Sleep,
	}
}

// WithPacing overrides the inter-call pacing. Tests and dev tooling use it
// to avoid real sleeps.
func (o *Orchestrator) WithPacing(delay func() time.Duration, sleep func(time.Duration)) *Orchestrator {
	o.delay = delay
	o.sleep = sleep
	return o
}

// typingDelay draws uniformly from 1000-2000ms. This paces the staggered
// reveal of replies; it is not a rate-limit backoff.
func typingDelay() time.Duration {
	return time.Duration(1000+rand.IntN(1001)) * time.Millisecond
}

// Run processes one user turn. The user message is assumed to be already
// appended; Run appends exactly one message per selected persona (a reply
// or a failure notice), except on the two batch-level paths, which append
// a single notice attributed to the first selected persona.
func (o *Orchestrator) Run(
	ctx context.Context,
	userMessage string,
	conv *domain.Conversation,
	selected []domain.PersonaID,
	appendMsg AppendFunc,
) {
	if len(selected) == 0 {
		return
	}

	log := observability.LoggerFromContext(ctx).With("conversation_id", conv.ID)

	if !o.llm.HasCredential() {
		log.Warn("no credential configured, skipping persona calls")
		appendMsg(missingCredentialNotice, domain.PersonaSender(selected[0]))
		return
	}

	if err := o.respond(ctx, log, userMessage, conv, selected, appendMsg); err != nil {
		// Errors escaping the per-persona isolation (unknown persona id)
		// abort the batch with one generic notice.
		log.Error("persona batch failed", "error", err)
		appendMsg(batchFailureNotice, domain.PersonaSender(selected[0]))
	}

	if conv.DeriveTitle(userMessage) {
		log.Info("conversation title derived", "title", conv.Title)
	}
}

func (o *Orchestrator) respond(
	ctx context.Context,
	log *slog.Logger,
	userMessage string,
	conv *domain.Conversation,
	selected []domain.PersonaID,
	appendMsg AppendFunc,
) error {
	for i, id := range selected {
		persona, err := o.personas.Find(id)
		if err != nil {
			return err
		}

		if i > 0 {
			o.sleep(o.delay())
		}

		// Context is derived from the live transcript at the moment of
		// each call, including anything appended earlier in this turn.
		window := BuildContext(conv.Messages, id)

		start := time.Now()
		reply, err := o.llm.Generate(ctx, persona, userMessage, window)
		if err != nil {
			log.Error("persona generation failed", "persona", id, "error", err)
			appendMsg(
				fmt.Sprintf("Sorry, %s couldn't respond this time. Please try again later.", persona.Name),
				domain.PersonaSender(id),
			)
			continue
		}

		log.Info("persona replied", "persona", id, "elapsed_ms", time.Since(start).Milliseconds())
		appendMsg(reply, domain.PersonaSender(id))
	}
	return nil
}

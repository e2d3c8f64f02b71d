// Package dispatch defines the outbound communication boundary and a
// channel router over the concrete senders (Twilio SMS, SMTP email, Retell
// voice). The campaign engine only ever sees the Dispatcher interface;
// delivery is fire-and-forget and failures never reach the orchestrator's
// callers.
package dispatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/domain"
)

// Outbound is one rendered message ready for delivery.
type Outbound struct {
	Channel   domain.EventType
	Campaign  domain.CampaignType
	EventName string
	Prospect  domain.Prospect
	Subject   string // email only
	Body      string
}

// Destination returns the channel-appropriate address for the prospect.
func (o *Outbound) Destination() string {
	if o.Channel == domain.EventEmail {
		return o.Prospect.Email
	}
	return o.Prospect.Phone
}

// Dispatcher delivers an outbound message.
type Dispatcher interface {
	Send(ctx context.Context, out Outbound) error
}

// SMSSender sends a text message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// EmailSender sends an email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// VoiceAgent places AI voice calls and drops voicemails. The body is the
// agent prompt, not literal speech.
type VoiceAgent interface {
	PlaceCall(ctx context.Context, to, prompt string) error
	DropVoicemail(ctx context.Context, to, message string) error
}

// Router routes outbound messages to the sender for their channel.
// Any sender may be nil; sends on an unconfigured channel fail.
type Router struct {
	sms    SMSSender
	email  EmailSender
	voice  VoiceAgent
	logger *zap.Logger
}

// NewRouter creates a Router over the configured senders.
func NewRouter(sms SMSSender, email EmailSender, voice VoiceAgent, logger *zap.Logger) *Router {
	return &Router{sms: sms, email: email, voice: voice, logger: logger}
}

// Send delivers the message via the sender registered for its channel.
func (r *Router) Send(ctx context.Context, out Outbound) error {
	dest := out.Destination()
	if dest == "" {
		return fmt.Errorf("prospect %s has no address for channel %s", out.Prospect.ID, out.Channel)
	}

	var err error
	switch out.Channel {
	case domain.EventSMS:
		if r.sms == nil {
			return fmt.Errorf("sms sender not configured")
		}
		err = r.sms.SendSMS(ctx, dest, out.Body)
	case domain.EventEmail:
		if r.email == nil {
			return fmt.Errorf("email sender not configured")
		}
		err = r.email.SendEmail(ctx, dest, out.Subject, out.Body)
	case domain.EventAIVoiceCall:
		if r.voice == nil {
			return fmt.Errorf("voice agent not configured")
		}
		err = r.voice.PlaceCall(ctx, dest, out.Body)
	case domain.EventVoicemailDrop:
		if r.voice == nil {
			return fmt.Errorf("voice agent not configured")
		}
		err = r.voice.DropVoicemail(ctx, dest, out.Body)
	default:
		return fmt.Errorf("unknown channel %q", out.Channel)
	}

	if err != nil {
		return fmt.Errorf("send %s to prospect %s: %w", out.Channel, out.Prospect.ID, err)
	}

	r.logger.Debug("message dispatched",
		zap.String("channel", string(out.Channel)),
		zap.String("campaign", string(out.Campaign)),
		zap.String("event", out.EventName),
		zap.String("prospect_id", out.Prospect.ID),
	)
	return nil
}

package dispatch

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/domain"
)

type stubSMS struct {
	to, body string
	err      error
}

func (s *stubSMS) SendSMS(_ context.Context, to, body string) error {
	s.to, s.body = to, body
	return s.err
}

type stubEmail struct {
	to, subject, body string
}

func (s *stubEmail) SendEmail(_ context.Context, to, subject, body string) error {
	s.to, s.subject, s.body = to, subject, body
	return nil
}

type stubVoice struct {
	calls      []string
	voicemails []string
}

func (s *stubVoice) PlaceCall(_ context.Context, to, prompt string) error {
	s.calls = append(s.calls, to)
	return nil
}

func (s *stubVoice) DropVoicemail(_ context.Context, to, message string) error {
	s.voicemails = append(s.voicemails, to)
	return nil
}

func outbound(ch domain.EventType) Outbound {
	return Outbound{
		Channel:   ch,
		Campaign:  domain.CampaignColdOffer,
		EventName: "test event",
		Prospect:  domain.Prospect{ID: "p1", Phone: "+15551234567", Email: "p1@example.com"},
		Subject:   "subject",
		Body:      "body",
	}
}

func TestRouterRoutesByChannel(t *testing.T) {
	sms := &stubSMS{}
	email := &stubEmail{}
	voice := &stubVoice{}
	r := NewRouter(sms, email, voice, zap.NewNop())
	ctx := context.Background()

	if err := r.Send(ctx, outbound(domain.EventSMS)); err != nil {
		t.Fatalf("sms send: %v", err)
	}
	if sms.to != "+15551234567" || sms.body != "body" {
		t.Errorf("sms got to=%q body=%q", sms.to, sms.body)
	}

	if err := r.Send(ctx, outbound(domain.EventEmail)); err != nil {
		t.Fatalf("email send: %v", err)
	}
	if email.to != "p1@example.com" || email.subject != "subject" {
		t.Errorf("email got to=%q subject=%q", email.to, email.subject)
	}

	if err := r.Send(ctx, outbound(domain.EventAIVoiceCall)); err != nil {
		t.Fatalf("voice send: %v", err)
	}
	if err := r.Send(ctx, outbound(domain.EventVoicemailDrop)); err != nil {
		t.Fatalf("voicemail send: %v", err)
	}
	if len(voice.calls) != 1 || len(voice.voicemails) != 1 {
		t.Errorf("voice calls=%d voicemails=%d", len(voice.calls), len(voice.voicemails))
	}
}

func TestRouterUnconfiguredChannel(t *testing.T) {
	r := NewRouter(&stubSMS{}, nil, nil, zap.NewNop())

	if err := r.Send(context.Background(), outbound(domain.EventEmail)); err == nil {
		t.Error("send on unconfigured email channel succeeded")
	}
	if err := r.Send(context.Background(), outbound(domain.EventAIVoiceCall)); err == nil {
		t.Error("send on unconfigured voice channel succeeded")
	}
}

func TestRouterMissingDestination(t *testing.T) {
	r := NewRouter(&stubSMS{}, nil, nil, zap.NewNop())

	out := outbound(domain.EventSMS)
	out.Prospect.Phone = ""
	if err := r.Send(context.Background(), out); err == nil {
		t.Error("send without destination succeeded")
	}
}

func TestRouterWrapsSenderError(t *testing.T) {
	sendErr := errors.New("carrier rejected")
	r := NewRouter(&stubSMS{err: sendErr}, nil, nil, zap.NewNop())

	err := r.Send(context.Background(), outbound(domain.EventSMS))
	if !errors.Is(err, sendErr) {
		t.Errorf("err = %v, want wrapped carrier error", err)
	}
}

func TestRouterUnknownChannel(t *testing.T) {
	r := NewRouter(&stubSMS{}, nil, nil, zap.NewNop())
	if err := r.Send(context.Background(), outbound(domain.EventType("fax"))); err == nil {
		t.Error("send on unknown channel succeeded")
	}
}

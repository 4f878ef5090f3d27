package services

import (
	"context"
	"sync"
	"time"

	"github.com/yungbote/carprice-backend/internal/platform/ratelimit"
	"github.com/yungbote/carprice-backend/internal/platform/sendgrid"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []sendgrid.SendEmailRequest
	err  error
}

func (f *fakeMailer) Send(_ context.Context, req sendgrid.SendEmailRequest) (*sendgrid.SendEmailResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, req)
	return &sendgrid.SendEmailResult{StatusCode: 202}, nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (f *fakeLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.allowed, nil
}

var (
	_ sendgrid.Client   = (*fakeMailer)(nil)
	_ ratelimit.Limiter = (*fakeLimiter)(nil)
)

package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tele "gopkg.in/telebot.v4"
)

type senderContext struct {
	tele.Context
	sender *tele.User
}

func (s *senderContext) Sender() *tele.User { return s.sender }

func TestAdminOnlyMiddleware(t *testing.T) {
	nextHit := false
	rejected := false
	mw := AdminOnlyMiddleware(AdminOptions{
		AdminID:  99,
		OnReject: func(tele.Context) error { rejected = true; return nil },
	})
	handler := mw(func(tele.Context) error { nextHit = true; return nil })

	// Sender-less updates must be rejected, not panic.
	assert.NoError(t, handler(&senderContext{sender: nil}))
	assert.True(t, rejected)
	assert.False(t, nextHit)

	rejected = false
	assert.NoError(t, handler(&senderContext{sender: &tele.User{ID: 7}}))
	assert.True(t, rejected)
	assert.False(t, nextHit)

	rejected = false
	assert.NoError(t, handler(&senderContext{sender: &tele.User{ID: 99}}))
	assert.False(t, rejected)
	assert.True(t, nextHit)
}

func TestAdminOnlyMiddlewareDisabled(t *testing.T) {
	nextHit := false
	handler := AdminOnlyMiddleware(AdminOptions{})(func(tele.Context) error {
		nextHit = true
		return nil
	})

	assert.NoError(t, handler(&senderContext{sender: nil}))
	assert.True(t, nextHit)
}

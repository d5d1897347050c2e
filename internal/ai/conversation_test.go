package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/config"
)

type fakeProvider struct {
	id   string
	text string
	err  error
}

func (f *fakeProvider) name() string { return f.id }

func (f *fakeProvider) complete(context.Context, string) (string, error) {
	return f.text, f.err
}

func TestReplyDefaultWithNoProviders(t *testing.T) {
	c, err := NewConversation(config.Default())
	require.NoError(t, err)
	assert.Equal(t, DefaultReply, c.Reply(context.Background(), "what is the meaning of life"))
}

func TestReplyFirstProviderWins(t *testing.T) {
	c := &Conversation{providers: []provider{
		&fakeProvider{id: "a", text: "answer from a"},
		&fakeProvider{id: "b", text: "answer from b"},
	}}
	assert.Equal(t, "answer from a", c.Reply(context.Background(), "hi"))
}

func TestReplyFallsThroughOnError(t *testing.T) {
	c := &Conversation{providers: []provider{
		&fakeProvider{id: "a", err: errors.New("quota exceeded")},
		&fakeProvider{id: "b", text: "answer from b"},
	}}
	assert.Equal(t, "answer from b", c.Reply(context.Background(), "hi"))
}

func TestReplyDefaultWhenAllFail(t *testing.T) {
	c := &Conversation{providers: []provider{
		&fakeProvider{id: "a", err: errors.New("down")},
		&fakeProvider{id: "b", err: errors.New("down too")},
	}}
	assert.Equal(t, DefaultReply, c.Reply(context.Background(), "hi"))
}

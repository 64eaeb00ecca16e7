package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xhttp "FinDash/pkg/http"
	"FinDash/pkg/logger"
)

type recordingRunner struct {
	events *[]string
}

func (r recordingRunner) Start() { *r.events = append(*r.events, "start") }

func (r recordingRunner) Stop(context.Context) error {
	*r.events = append(*r.events, "stop")
	return nil
}

func TestRunContextShutsDownInOrder(t *testing.T) {
	var events []string
	srv := xhttp.NewServer(nil, xhttp.WithHost("127.0.0.1"), xhttp.WithPort(0))
	app := New(srv,
		[]Runner{recordingRunner{events: &events}},
		[]Closer{
			{Name: "first", Close: func() error { events = append(events, "close first"); return nil }},
			{Name: "second", Close: func() error { events = append(events, "close second"); return errors.New("ignored") }},
		},
		time.Second,
		logger.Nop(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, app.RunContext(ctx))

	assert.Equal(t, []string{"start", "stop", "close second", "close first"}, events)
}

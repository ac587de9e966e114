package chflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReceive(t *testing.T) {
	t.Run("receives buffered value", func(t *testing.T) {
		ch := make(chan int, 1)
		ch <- 7

		v, ok := Receive(t.Context(), ch)
		assert.True(t, ok)
		assert.Equal(t, 7, v)
	})

	t.Run("closed channel reports not ok", func(t *testing.T) {
		ch := make(chan int)
		close(ch)

		_, ok := Receive(t.Context(), ch)
		assert.False(t, ok)
	})

	t.Run("canceled context unblocks", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, ok := Receive(ctx, make(chan int))
		assert.False(t, ok)
	})
}

func TestSend(t *testing.T) {
	t.Run("sends when capacity available", func(t *testing.T) {
		ch := make(chan string, 1)

		ok := Send(t.Context(), ch, "block")
		assert.True(t, ok)
		assert.Equal(t, "block", <-ch)
	})

	t.Run("canceled context aborts blocked send", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		ok := Send(ctx, make(chan string), "block")
		assert.False(t, ok)
	})
}

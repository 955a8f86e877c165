package rollback_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/rollback"
)

func TestStack_RunReverseOrder(t *testing.T) {
	var got []string
	s := rollback.NewStack()
	s.Add("first", func(ctx context.Context) error {
		got = append(got, "first")
		return nil
	})
	s.Add("second", func(ctx context.Context) error {
		got = append(got, "second")
		return nil
	})

	s.Run(context.Background())

	assert.Equal(t, []string{"second", "first"}, got)
	assert.Zero(t, s.Len())
}

func TestStack_FailingActionDoesNotStopOthers(t *testing.T) {
	var got []string
	s := rollback.NewStack()
	s.Add("delete row", func(ctx context.Context) error {
		got = append(got, "delete row")
		return nil
	})
	s.Add("delete object", func(ctx context.Context) error {
		return errors.New("object store unavailable")
	})

	s.Run(context.Background())

	assert.Equal(t, []string{"delete row"}, got)
}

func TestStack_ClearMakesRunNoop(t *testing.T) {
	ran := false
	s := rollback.NewStack()
	s.Add("delete object", func(ctx context.Context) error {
		ran = true
		return nil
	})

	s.Clear()
	s.Run(context.Background())

	assert.False(t, ran)
}

func TestStack_AddNilIgnored(t *testing.T) {
	s := rollback.NewStack()
	s.Add("noop", nil)
	assert.Zero(t, s.Len())
}

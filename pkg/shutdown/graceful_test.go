package shutdown

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStopAll(t *testing.T) {
	var order []string
	first := Func(func(context.Context) error { order = append(order, "server"); return nil })
	second := Func(func(context.Context) error { order = append(order, "neo4j"); return errors.New("close failed") })
	third := Func(func(context.Context) error { order = append(order, "redis"); return nil })

	err := StopAll(context.Background(), first, nil, second, third)
	assert.ErrorContains(t, err, "close failed")
	assert.Equal(t, []string{"server", "neo4j", "redis"}, order)
}

func TestStopAll_NoComponents(t *testing.T) {
	assert.NoError(t, StopAll(context.Background()))
}

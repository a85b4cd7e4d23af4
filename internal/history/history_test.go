package history

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestDisabledPublisherIsNilSafe(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	p := New("", log)
	assert.Nil(t, p)

	rec := Record{RoomID: "ABC123", Index: 1, Type: "play-card"}
	assert.NoError(t, p.Publish(context.Background(), rec))
	p.PublishAsync(rec)
	assert.NoError(t, p.Close())
}

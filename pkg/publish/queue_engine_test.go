package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uaserve/uaserve-go/pkg/ua"
)

func TestQueueEngineParkAndConsume(t *testing.T) {
	engine := NewQueueEngine(nil)

	assert.Equal(t, 0, engine.PendingPublishRequestCount())

	engine.ParkPublishRequest()
	engine.ParkPublishRequest()
	assert.Equal(t, 2, engine.PendingPublishRequestCount())

	engine.SendNotificationMessage(OutgoingMessage{
		SubscriptionID: 1,
		Message:        ua.NotificationMessage{SequenceNumber: 1},
	})
	assert.Equal(t, 1, engine.PendingPublishRequestCount())

	require.Len(t, engine.Responses(), 1)
	assert.False(t, engine.Responses()[0].KeepAlive)
}

func TestQueueEngineKeepAliveRefusedWhenEmpty(t *testing.T) {
	engine := NewQueueEngine(nil)

	assert.False(t, engine.SendKeepAliveResponse(1, 5),
		"keep-alive must be refused with no parked request")
	assert.Empty(t, engine.Responses())

	engine.ParkPublishRequest()
	assert.True(t, engine.SendKeepAliveResponse(1, 5))
	assert.Equal(t, 0, engine.PendingPublishRequestCount())

	responses := engine.Responses()
	require.Len(t, responses, 1)
	assert.True(t, responses[0].KeepAlive)
	assert.Equal(t, uint32(5), responses[0].Message.SequenceNumber)
}

func TestQueueEngineSink(t *testing.T) {
	var delivered []Response
	engine := NewQueueEngine(func(resp Response) {
		delivered = append(delivered, resp)
	})

	engine.ParkPublishRequest()
	engine.SendNotificationMessage(OutgoingMessage{
		SubscriptionID:    3,
		Message:           ua.NotificationMessage{SequenceNumber: 9},
		MoreNotifications: true,
	})

	require.Len(t, delivered, 1)
	assert.Equal(t, uint32(3), delivered[0].SubscriptionID)
	assert.Equal(t, uint32(9), delivered[0].Message.SequenceNumber)
	assert.True(t, delivered[0].MoreNotifications)
	assert.Empty(t, engine.Responses(), "history is only kept with a nil sink")
}

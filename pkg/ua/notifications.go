package ua

import "time"

// MonitoredItemNotification is one sampled value change, tagged with the
// client handle of the monitored item that produced it.
type MonitoredItemNotification struct {
	ClientHandle uint32
	Value        DataValue
}

// EventFieldList is one event occurrence, tagged with the client handle of
// the monitored item that produced it.
type EventFieldList struct {
	ClientHandle uint32
	EventFields  []any
}

// NotificationData is implemented by the payload variants a notification
// message can carry.
type NotificationData interface {
	notificationData()
}

// DataChangeNotification carries value changes from monitored items.
type DataChangeNotification struct {
	MonitoredItems []MonitoredItemNotification
}

func (*DataChangeNotification) notificationData() {}

// EventNotificationList carries event occurrences from monitored items.
type EventNotificationList struct {
	Events []EventFieldList
}

func (*EventNotificationList) notificationData() {}

// StatusChangeNotification reports a change of the subscription status
// itself, such as termination on life-time expiry.
type StatusChangeNotification struct {
	Status StatusCode
}

func (*StatusChangeNotification) notificationData() {}

// NotificationMessage is the container handed to a publish response. It
// carries one or two NotificationData entries.
type NotificationMessage struct {
	SequenceNumber   uint32
	PublishTime      time.Time
	NotificationData []NotificationData
}

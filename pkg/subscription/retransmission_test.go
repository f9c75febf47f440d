package subscription

import "testing"

func rec(seq uint32) *NotificationRecord {
	return &NotificationRecord{SequenceNumber: seq}
}

func TestRetransmissionQueueAppendBound(t *testing.T) {
	var q retransmissionQueue

	for seq := uint32(1); seq <= 150; seq++ {
		q.append(rec(seq))
	}

	if q.len() != maxRetransmissionQueueSize {
		t.Fatalf("len() = %d, want %d", q.len(), maxRetransmissionQueueSize)
	}

	// Oldest dropped first: 1..50 are gone, 51..150 remain.
	if q.lookup(50) != nil {
		t.Error("lookup(50) should be nil after eviction")
	}
	if q.lookup(51) == nil {
		t.Error("lookup(51) should survive eviction")
	}
	if q.lookup(150) == nil {
		t.Error("lookup(150) should survive eviction")
	}
}

func TestRetransmissionQueueAcknowledge(t *testing.T) {
	var q retransmissionQueue
	q.append(rec(1))
	q.append(rec(2))
	q.append(rec(3))

	if !q.acknowledge(2) {
		t.Fatal("acknowledge(2) = false, want true")
	}
	if q.acknowledge(2) {
		t.Error("second acknowledge(2) = true, want false")
	}
	if got, want := q.sequenceNumbers(), []uint32{1, 3}; !equalSeqs(got, want) {
		t.Errorf("sequenceNumbers() = %v, want %v", got, want)
	}
}

func TestRetransmissionQueueAcknowledgeUnknown(t *testing.T) {
	var q retransmissionQueue
	q.append(rec(7))

	if q.acknowledge(99) {
		t.Error("acknowledge(99) = true, want false")
	}
	if q.len() != 1 {
		t.Errorf("len() = %d after failed ack, want 1", q.len())
	}
}

func TestRetransmissionQueueDropAged(t *testing.T) {
	var q retransmissionQueue
	q.append(&NotificationRecord{SequenceNumber: 1, StartTick: 1})
	q.append(&NotificationRecord{SequenceNumber: 2, StartTick: 5})
	q.append(&NotificationRecord{SequenceNumber: 3, StartTick: 9})

	// maxKeepAliveCount 3 at tick 10: records started before tick 7 age out.
	dropped := q.dropAged(10, 3)
	if dropped != 2 {
		t.Fatalf("dropAged() = %d, want 2", dropped)
	}
	if got, want := q.sequenceNumbers(), []uint32{3}; !equalSeqs(got, want) {
		t.Errorf("sequenceNumbers() = %v, want %v", got, want)
	}
}

func TestPendingQueueFIFO(t *testing.T) {
	var q pendingQueue

	if q.pop() != nil {
		t.Fatal("pop() on empty queue should be nil")
	}

	q.push(rec(1))
	q.push(rec(2))

	if got := q.pop(); got == nil || got.SequenceNumber != 1 {
		t.Fatalf("first pop() = %v, want sequence 1", got)
	}
	if got := q.pop(); got == nil || got.SequenceNumber != 2 {
		t.Fatalf("second pop() = %v, want sequence 2", got)
	}
	if q.pop() != nil {
		t.Error("pop() after drain should be nil")
	}
}

func equalSeqs(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

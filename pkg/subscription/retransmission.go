package subscription

// maxRetransmissionQueueSize bounds the number of sent notification messages
// retained for republish. The original implementation guarded this prune
// with a comparison of an integer against an array reference, which never
// fired; the documented intent, implemented here, is to keep the newest 100
// entries and drop the oldest beyond that.
const maxRetransmissionQueueSize = 100

// retransmissionQueue is a bounded FIFO of sent notification messages,
// indexed by sequence number for acknowledgement and republish. Methods are
// called with the owning subscription's lock held.
type retransmissionQueue struct {
	records []*NotificationRecord
}

// append adds a record at the tail, evicting from the head beyond the bound.
func (q *retransmissionQueue) append(rec *NotificationRecord) {
	q.records = append(q.records, rec)
	if excess := len(q.records) - maxRetransmissionQueueSize; excess > 0 {
		q.records = q.records[excess:]
	}
}

// acknowledge removes the record with the given sequence number. Returns
// false when no such record is queued.
func (q *retransmissionQueue) acknowledge(seq uint32) bool {
	for i, rec := range q.records {
		if rec.SequenceNumber == seq {
			q.records = append(q.records[:i], q.records[i+1:]...)
			return true
		}
	}
	return false
}

// lookup returns the record with the given sequence number, or nil.
func (q *retransmissionQueue) lookup(seq uint32) *NotificationRecord {
	for _, rec := range q.records {
		if rec.SequenceNumber == seq {
			return rec
		}
	}
	return nil
}

// sequenceNumbers returns the queued sequence numbers, oldest first.
func (q *retransmissionQueue) sequenceNumbers() []uint32 {
	seqs := make([]uint32, 0, len(q.records))
	for _, rec := range q.records {
		seqs = append(seqs, rec.SequenceNumber)
	}
	return seqs
}

// dropAged evicts records older than maxKeepAliveCount cycles at the given
// tick. Returns the number dropped.
func (q *retransmissionQueue) dropAged(tick uint64, maxKeepAliveCount uint32) int {
	kept := q.records[:0]
	for _, rec := range q.records {
		if !rec.agedAt(tick, maxKeepAliveCount) {
			kept = append(kept, rec)
		}
	}
	dropped := len(q.records) - len(kept)
	q.records = kept
	return dropped
}

func (q *retransmissionQueue) len() int {
	return len(q.records)
}

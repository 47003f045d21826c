package record

import (
	"encoding/json"
	"fmt"
)

// HourBucket is an hour of day ordered for shift-aligned reporting: the
// sequence starts at 7AM and wraps through midnight to 6AM.
type HourBucket uint8

const (
	Bucket7AM HourBucket = iota
	Bucket8AM
	Bucket9AM
	Bucket10AM
	Bucket11AM
	Bucket12PM
	Bucket1PM
	Bucket2PM
	Bucket3PM
	Bucket4PM
	Bucket5PM
	Bucket6PM
	Bucket7PM
	Bucket8PM
	Bucket9PM
	Bucket10PM
	Bucket11PM
	Bucket12AM
	Bucket1AM
	Bucket2AM
	Bucket3AM
	Bucket4AM
	Bucket5AM
	Bucket6AM
)

// NumHourBuckets is the number of distinct hour buckets.
const NumHourBuckets = 24

var hourBucketLabels = [NumHourBuckets]string{
	"7AM", "8AM", "9AM", "10AM", "11AM", "12PM",
	"1PM", "2PM", "3PM", "4PM", "5PM", "6PM",
	"7PM", "8PM", "9PM", "10PM", "11PM", "12AM",
	"1AM", "2AM", "3AM", "4AM", "5AM", "6AM",
}

var hourBucketByLabel = func() map[string]HourBucket {
	m := make(map[string]HourBucket, NumHourBuckets)
	for i, label := range hourBucketLabels {
		m[label] = HourBucket(i)
	}
	return m
}()

// HourBuckets returns all buckets in reporting order.
func HourBuckets() []HourBucket {
	out := make([]HourBucket, NumHourBuckets)
	for i := range out {
		out[i] = HourBucket(i)
	}
	return out
}

// HourBucketLabels returns the bucket labels in reporting order.
func HourBucketLabels() []string {
	out := make([]string, NumHourBuckets)
	copy(out, hourBucketLabels[:])
	return out
}

// ParseHourBucket maps a 12-hour clock label such as "12AM" to its bucket.
func ParseHourBucket(label string) (HourBucket, error) {
	b, ok := hourBucketByLabel[label]
	if !ok {
		return 0, &UnknownHourLabelError{Label: label}
	}
	return b, nil
}

// Valid reports whether b is one of the 24 defined buckets.
func (b HourBucket) Valid() bool {
	return int(b) < NumHourBuckets
}

// Index returns the position of b in reporting order.
func (b HourBucket) Index() int {
	return int(b)
}

func (b HourBucket) String() string {
	if !b.Valid() {
		return fmt.Sprintf("HourBucket(%d)", uint8(b))
	}
	return hourBucketLabels[b]
}

// MarshalJSON encodes the bucket as its label.
func (b HourBucket) MarshalJSON() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid hour bucket %d", uint8(b))
	}
	return json.Marshal(hourBucketLabels[b])
}

// UnmarshalJSON decodes a bucket from its label.
func (b *HourBucket) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseHourBucket(label)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

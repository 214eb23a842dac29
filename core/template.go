package core

import "github.com/huangsam/relicdb/schema"

// NewSkeleton returns a fresh all-zero weight record. Every call allocates its own
// vectors, so mutating one skeleton never affects another.
func NewSkeleton() *schema.WeightRecord {
	return schema.NewWeightRecord()
}

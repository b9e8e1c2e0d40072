package models

type Reward struct {
	ID          int64 `db:"id"`
	ProjectID   int64 `db:"project_id"`
	Number      int64 `db:"number"`
	Distributed int64 `db:"distributed"`
}

// Available reports whether another unit of the reward can still be handed out.
// Number zero means an unlimited reward.
func (r *Reward) Available() bool {
	return r.Number == 0 || r.Distributed < r.Number
}

package domain

// Product is a single catalog record addressed by its caller-supplied id.
// ProductID is immutable after creation; Put is an unconditional upsert, so
// creating twice with the same id silently overwrites.
type Product struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
}

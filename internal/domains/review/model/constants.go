package model

const (
	// Rating
	MinRating = 1
	MaxRating = 5

	// Comment limits (characters, not bytes)
	MaxCommentLength = 1000
)

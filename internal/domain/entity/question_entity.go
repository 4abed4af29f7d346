package entity

import "time"

// Answer is one selectable option of a quiz question.
type Answer struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Question is a quiz question with its weighted answers.
type Question struct {
	ID           string    `json:"id"`
	QuestionText string    `json:"questionText"`
	Answers      []Answer  `json:"answers"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

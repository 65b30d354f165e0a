package model

// Question is a bank entry: the prompt, the single correct answer and the
// wrong alternatives. The playable shuffled form is produced at fetch time.
type Question struct {
	Text    string   `json:"text"`
	Correct string   `json:"correct"`
	Wrong   []string `json:"wrong"`
}

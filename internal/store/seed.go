package store

import (
	questionModel "github.com/trivio-games/trivio/internal/database/question/model"
)

// seedQuestions fills an empty bank on first boot so a fresh server can
// host a game right away. Operators extend the bank through the database.
var seedQuestions = []questionModel.Question{
	{
		Text:    "What is the capital of France?",
		Correct: "Paris",
		Wrong:   []string{"Lyon", "Marseille", "Nice"},
	},
	{
		Text:    "Which planet is known as the Red Planet?",
		Correct: "Mars",
		Wrong:   []string{"Venus", "Jupiter", "Mercury"},
	},
	{
		Text:    "How many continents are there on Earth?",
		Correct: "7",
		Wrong:   []string{"5", "6", "8"},
	},
	{
		Text:    "What is the largest ocean on Earth?",
		Correct: "Pacific",
		Wrong:   []string{"Atlantic", "Indian", "Arctic"},
	},
	{
		Text:    "Which element has the chemical symbol O?",
		Correct: "Oxygen",
		Wrong:   []string{"Gold", "Osmium", "Oganesson"},
	},
	{
		Text:    "In which year did the first human land on the Moon?",
		Correct: "1969",
		Wrong:   []string{"1959", "1972", "1965"},
	},
	{
		Text:    "What is the longest river in the world?",
		Correct: "The Nile",
		Wrong:   []string{"The Amazon", "The Yangtze", "The Mississippi"},
	},
	{
		Text:    "How many players are on a standard soccer team?",
		Correct: "11",
		Wrong:   []string{"9", "10", "12"},
	},
	{
		Text:    "Which country is home to the kangaroo?",
		Correct: "Australia",
		Wrong:   []string{"New Zealand", "South Africa", "Brazil"},
	},
	{
		Text:    "What is the smallest prime number?",
		Correct: "2",
		Wrong:   []string{"1", "3", "0"},
	},
	{
		Text:    "Who painted the Mona Lisa?",
		Correct: "Leonardo da Vinci",
		Wrong:   []string{"Michelangelo", "Raphael", "Donatello"},
	},
	{
		Text:    "What is the hardest natural substance on Earth?",
		Correct: "Diamond",
		Wrong:   []string{"Quartz", "Topaz", "Corundum"},
	},
	{
		Text:    "Which gas do plants absorb from the atmosphere?",
		Correct: "Carbon dioxide",
		Wrong:   []string{"Oxygen", "Nitrogen", "Hydrogen"},
	},
	{
		Text:    "How many minutes are in a full week?",
		Correct: "10080",
		Wrong:   []string{"1440", "7200", "86400"},
	},
}

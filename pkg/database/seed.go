package database

import (
	"codequest_backend/internal/model"
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func catalogID(id string) model.CatalogBase {
	return model.CatalogBase{ID: id}
}

var seedLanguages = []model.Language{
	{CatalogBase: catalogID("python"), Name: "Python", Description: "A versatile, beginner-friendly language perfect for data science, AI, and web development.", Icon: "SiPython", Color: "#3776AB", Difficulty: "beginner", Category: "programming", LessonsCount: 24},
	{CatalogBase: catalogID("javascript"), Name: "JavaScript", Description: "The language of the web. Build interactive websites and full-stack applications.", Icon: "SiJavascript", Color: "#F7DF1E", Difficulty: "beginner", Category: "programming", LessonsCount: 28},
	{CatalogBase: catalogID("java"), Name: "Java", Description: "Enterprise-grade language for building robust, scalable applications.", Icon: "SiOpenjdk", Color: "#ED8B00", Difficulty: "intermediate", Category: "programming", LessonsCount: 32},
	{CatalogBase: catalogID("c"), Name: "C", Description: "The foundational language for systems programming and embedded systems.", Icon: "SiC", Color: "#A8B9CC", Difficulty: "intermediate", Category: "programming", LessonsCount: 20},
	{CatalogBase: catalogID("cpp"), Name: "C++", Description: "Powerful language for game development, systems programming, and high-performance apps.", Icon: "SiCplusplus", Color: "#00599C", Difficulty: "advanced", Category: "programming", LessonsCount: 30},
	{CatalogBase: catalogID("html"), Name: "HTML", Description: "The backbone of web pages. Learn to structure content for the web.", Icon: "SiHtml5", Color: "#E34F26", Difficulty: "beginner", Category: "web", LessonsCount: 15},
	{CatalogBase: catalogID("css"), Name: "CSS", Description: "Style your web pages with beautiful designs, layouts, and animations.", Icon: "SiCss3", Color: "#1572B6", Difficulty: "beginner", Category: "web", LessonsCount: 18},
	{CatalogBase: catalogID("sql"), Name: "SQL", Description: "Query and manage databases with the universal database language.", Icon: "SiPostgresql", Color: "#4479A1", Difficulty: "beginner", Category: "database", LessonsCount: 16},
	{CatalogBase: catalogID("fullstack"), Name: "Full Stack", Description: "Master both frontend and backend development to build complete web applications.", Icon: "SiReact", Color: "#61DAFB", Difficulty: "advanced", Category: "web", LessonsCount: 40},
	{CatalogBase: catalogID("dsa"), Name: "DSA", Description: "Data Structures & Algorithms - the foundation for coding interviews and efficient programming.", Icon: "SiLeetcode", Color: "#FFA116", Difficulty: "intermediate", Category: "dsa", LessonsCount: 50},
}

var seedLessons = []model.Lesson{
	{CatalogBase: catalogID("py-1"), LanguageID: "python", Title: "Introduction to Python", Description: "Get started with Python basics", Order: 1, Duration: 15, XPReward: 50, Content: "Learn Python fundamentals including syntax, variables, and basic operations."},
	{CatalogBase: catalogID("py-2"), LanguageID: "python", Title: "Variables and Data Types", Description: "Learn about Python data types", Order: 2, Duration: 20, XPReward: 60, Content: "Explore strings, integers, floats, booleans, and type conversion."},
	{CatalogBase: catalogID("py-3"), LanguageID: "python", Title: "Control Flow", Description: "Master if statements and loops", Order: 3, Duration: 25, XPReward: 70, Content: "Learn conditional statements, for loops, and while loops."},
	{CatalogBase: catalogID("py-4"), LanguageID: "python", Title: "Functions", Description: "Create reusable code with functions", Order: 4, Duration: 30, XPReward: 80, Content: "Define functions, parameters, return values, and scope."},
	{CatalogBase: catalogID("py-5"), LanguageID: "python", Title: "Lists and Tuples", Description: "Work with collections in Python", Order: 5, Duration: 25, XPReward: 70, Content: "Master lists, tuples, and common operations on sequences."},
	{CatalogBase: catalogID("js-1"), LanguageID: "javascript", Title: "JavaScript Fundamentals", Description: "Core concepts of JavaScript", Order: 1, Duration: 15, XPReward: 50, Content: "Learn JavaScript basics including variables, operators, and expressions."},
	{CatalogBase: catalogID("js-2"), LanguageID: "javascript", Title: "DOM Manipulation", Description: "Interact with web pages", Order: 2, Duration: 25, XPReward: 70, Content: "Select, modify, and create HTML elements with JavaScript."},
	{CatalogBase: catalogID("js-3"), LanguageID: "javascript", Title: "Async JavaScript", Description: "Promises and async/await", Order: 3, Duration: 30, XPReward: 80, Content: "Handle asynchronous operations with callbacks, promises, and async/await."},
	{CatalogBase: catalogID("js-4"), LanguageID: "javascript", Title: "ES6+ Features", Description: "Modern JavaScript syntax", Order: 4, Duration: 25, XPReward: 70, Content: "Arrow functions, destructuring, spread operator, and modules."},
}

var seedAchievements = []model.Achievement{
	{CatalogBase: catalogID("first-lesson"), Name: "First Steps", Description: "Complete your first lesson", Icon: "Trophy", Type: model.AchievementLessons, Requirement: 1},
	{CatalogBase: catalogID("streak-3"), Name: "On Fire", Description: "Maintain a 3-day streak", Icon: "Flame", Type: model.AchievementStreak, Requirement: 3},
	{CatalogBase: catalogID("streak-7"), Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "Flame", Type: model.AchievementStreak, Requirement: 7},
	{CatalogBase: catalogID("xp-500"), Name: "Rising Star", Description: "Earn 500 XP", Icon: "Star", Type: model.AchievementXP, Requirement: 500},
	{CatalogBase: catalogID("xp-1000"), Name: "Knowledge Seeker", Description: "Earn 1000 XP", Icon: "Star", Type: model.AchievementXP, Requirement: 1000},
	{CatalogBase: catalogID("quiz-master"), Name: "Quiz Master", Description: "Complete 10 quizzes", Icon: "CheckCircle", Type: model.AchievementQuizzes, Requirement: 10},
	{CatalogBase: catalogID("challenge-ace"), Name: "Challenge Ace", Description: "Solve 5 coding challenges", Icon: "Code", Type: model.AchievementChallenges, Requirement: 5},
	{CatalogBase: catalogID("python-pro"), Name: "Python Pro", Description: "Complete all Python lessons", Icon: "Award", Type: model.AchievementLanguage, Requirement: 1, LanguageID: "python"},
}

var seedChallenges = []model.Challenge{
	{
		CatalogBase: catalogID("ch-1"),
		Title:       "Two Sum",
		Description: "Given an array of integers nums and an integer target, return indices of the two numbers such that they add up to target.",
		Difficulty:  "easy",
		Category:    "Arrays",
		XPReward:    150,
		StarterCode: "def two_sum(nums, target):\n    # Your code here\n    pass",
		TestCases: datatypes.NewJSONSlice([]model.TestCase{
			{Input: "[2,7,11,15], 9", Output: "[0,1]"},
			{Input: "[3,2,4], 6", Output: "[1,2]"},
		}),
	},
	{
		CatalogBase: catalogID("ch-2"),
		Title:       "Reverse String",
		Description: "Write a function that reverses a string. The input string is given as an array of characters.",
		Difficulty:  "easy",
		Category:    "Strings",
		XPReward:    100,
		StarterCode: "def reverse_string(s):\n    # Your code here\n    pass",
		TestCases: datatypes.NewJSONSlice([]model.TestCase{
			{Input: `["h","e","l","l","o"]`, Output: `["o","l","l","e","h"]`},
		}),
	},
	{
		CatalogBase: catalogID("ch-3"),
		Title:       "Valid Parentheses",
		Description: "Given a string s containing just the characters '(', ')', '{', '}', '[' and ']', determine if the input string is valid.",
		Difficulty:  "medium",
		Category:    "Stack",
		XPReward:    200,
		StarterCode: "def is_valid(s):\n    # Your code here\n    pass",
		TestCases: datatypes.NewJSONSlice([]model.TestCase{
			{Input: `"()"`, Output: "true"},
			{Input: `"()[]{}"`, Output: "true"},
			{Input: `"(]"`, Output: "false"},
		}),
	},
}

func strPtr(s string) *string { return &s }

var seedQuizzes = []model.Quiz{
	{
		CatalogBase: catalogID("quiz-py-basics"),
		LessonID:    strPtr("py-2"),
		LanguageID:  "python",
		Title:       "Python Basics",
		Description: "Check your understanding of Python variables and data types.",
		TimeLimit:   300,
		XPReward:    100,
		Questions: []model.QuizQuestion{
			{CatalogBase: catalogID("quiz-py-basics-1"), Type: model.QuestionMCQ, Question: "Which of these is an immutable type in Python?", Options: datatypes.NewJSONSlice([]string{"list", "dict", "tuple", "set"}), CorrectAnswer: "tuple", Explanation: "Tuples cannot be modified after creation.", Order: 1},
			{CatalogBase: catalogID("quiz-py-basics-2"), Type: model.QuestionCodeOutput, Question: "What does this code print?", Code: "x = 3\ny = 2\nprint(x ** y)", Options: datatypes.NewJSONSlice([]string{"6", "9", "5", "8"}), CorrectAnswer: "9", Explanation: "** is exponentiation, so 3 ** 2 is 9.", Order: 2},
			{CatalogBase: catalogID("quiz-py-basics-3"), Type: model.QuestionMCQ, Question: "What is the result of int(\"7\") + 3?", Options: datatypes.NewJSONSlice([]string{"73", "10", "TypeError", "\"10\""}), CorrectAnswer: "10", Explanation: "int() converts the string to an integer before addition.", Order: 3},
			{CatalogBase: catalogID("quiz-py-basics-4"), Type: model.QuestionDebugging, Question: "Why does this code fail?", Code: "name = \"Ada\"\nprint(\"Hello \" + name + 1)", Options: datatypes.NewJSONSlice([]string{"Missing colon", "Cannot concatenate str and int", "name is undefined", "print needs two arguments"}), CorrectAnswer: "Cannot concatenate str and int", Explanation: "Convert the number with str(1) first.", Order: 4},
		},
	},
	{
		CatalogBase: catalogID("quiz-js-fundamentals"),
		LessonID:    strPtr("js-1"),
		LanguageID:  "javascript",
		Title:       "JavaScript Fundamentals",
		Description: "Variables, operators and expressions.",
		TimeLimit:   300,
		XPReward:    100,
		Questions: []model.QuizQuestion{
			{CatalogBase: catalogID("quiz-js-fundamentals-1"), Type: model.QuestionMCQ, Question: "Which keyword declares a block-scoped constant?", Options: datatypes.NewJSONSlice([]string{"var", "let", "const", "static"}), CorrectAnswer: "const", Explanation: "const declares a block-scoped binding that cannot be reassigned.", Order: 1},
			{CatalogBase: catalogID("quiz-js-fundamentals-2"), Type: model.QuestionCodeOutput, Question: "What does this code log?", Code: "console.log(1 + \"2\")", Options: datatypes.NewJSONSlice([]string{"3", "\"12\"", "12", "NaN"}), CorrectAnswer: "12", Explanation: "The number is coerced to a string and concatenated.", Order: 2},
			{CatalogBase: catalogID("quiz-js-fundamentals-3"), Type: model.QuestionMCQ, Question: "What is typeof null?", Options: datatypes.NewJSONSlice([]string{"null", "undefined", "object", "number"}), CorrectAnswer: "object", Explanation: "A long-standing quirk of the language.", Order: 3},
		},
	},
}

// SeedCatalog 幂等写入静态目录数据，已存在的行保持不变
func SeedCatalog(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Session(&gorm.Session{})

	languages := append([]model.Language(nil), seedLanguages...)
	if err := tx.Create(&languages).Error; err != nil {
		return fmt.Errorf("seed languages: %w", err)
	}
	lessons := append([]model.Lesson(nil), seedLessons...)
	if err := tx.Create(&lessons).Error; err != nil {
		return fmt.Errorf("seed lessons: %w", err)
	}
	achievements := append([]model.Achievement(nil), seedAchievements...)
	if err := tx.Create(&achievements).Error; err != nil {
		return fmt.Errorf("seed achievements: %w", err)
	}
	challenges := append([]model.Challenge(nil), seedChallenges...)
	if err := tx.Create(&challenges).Error; err != nil {
		return fmt.Errorf("seed challenges: %w", err)
	}

	for _, seed := range seedQuizzes {
		quiz := seed
		quiz.Questions = nil
		if err := tx.Create(&quiz).Error; err != nil {
			return fmt.Errorf("seed quiz %s: %w", quiz.ID, err)
		}

		questions := append([]model.QuizQuestion(nil), seed.Questions...)
		for i := range questions {
			questions[i].QuizID = quiz.ID
		}
		if err := tx.Create(&questions).Error; err != nil {
			return fmt.Errorf("seed quiz %s questions: %w", quiz.ID, err)
		}
	}

	return nil
}

package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSlice stores a string list as a JSON array in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		// nil 슬라이스는 빈 JSON 배열로 저장
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	data, err := jsonBytes("StringSlice", value)
	if err != nil {
		return err
	}
	if data == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(s))
}

// IntSlice stores option indices (answer sets) as a JSON array.
type IntSlice []int

func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]int(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (s *IntSlice) Scan(value interface{}) error {
	data, err := jsonBytes("IntSlice", value)
	if err != nil {
		return err
	}
	if data == nil {
		*s = IntSlice{}
		return nil
	}
	return json.Unmarshal(data, (*[]int)(s))
}

// jsonBytes normalizes a driver value into JSON bytes. NULL, empty text and a
// literal "null" all come back as nil.
func jsonBytes(typeName string, value interface{}) ([]byte, error) {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case fmt.Stringer:
		data = []byte(v.String())
	default:
		return nil, fmt.Errorf("%s Scan: unsupported type %T", typeName, value)
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	return data, nil
}

// Topic maps the TOPICS table.
type Topic struct {
	ID        int64          `db:"ID"`
	Name      string         `db:"NAME"`
	Content   sql.NullString `db:"CONTENT"`
	CreatedAt time.Time      `db:"CREATED_AT"`
}

// Question maps the QUIZ_QUESTIONS table.
type Question struct {
	ID             int64          `db:"ID"`
	TopicID        int64          `db:"TOPIC_ID"`
	Subtopic       sql.NullString `db:"SUBTOPIC"`
	QuestionType   string         `db:"QUESTION_TYPE"`
	Question       string         `db:"QUESTION"`
	Options        StringSlice    `db:"OPTIONS"`
	CorrectAnswers IntSlice       `db:"CORRECT_ANSWERS"`
	Explanation    sql.NullString `db:"EXPLANATION"`
	Source         sql.NullString `db:"SOURCE"`
	CreatedAt      time.Time      `db:"CREATED_AT"`
}

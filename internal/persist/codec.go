package persist

import (
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/amalmed/opstrack/internal/record"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeTasks serializes the collection as a JSON array.
func EncodeTasks(tasks []record.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []record.Task{}
	}
	return json.Marshal(tasks)
}

// DecodeTasks parses a JSON array of tasks.
func DecodeTasks(data []byte) ([]record.Task, error) {
	var tasks []record.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []record.Task{}
	}
	return tasks, nil
}

func encodeSchema(v int) []byte {
	return []byte(strconv.Itoa(v))
}

func decodeSchema(data []byte) (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

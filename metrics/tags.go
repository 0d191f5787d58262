package metrics

const (
	OperationTagName = "operation"
	ScenarioTagName  = "scenario"
	QueueNameTagName = "queue_name"
	StatusTagName    = "status"
	RunIDTagName     = "run_id"
)

type (
	// Tag is a key/value pair attached to a metric recording.
	Tag interface {
		Key() string
		Value() string
	}

	tagImpl struct {
		key   string
		value string
	}
)

func (v tagImpl) Key() string {
	return v.key
}

func (v tagImpl) Value() string {
	return v.value
}

// StringTag returns a new Tag using key and value.
func StringTag(key string, value string) Tag {
	return tagImpl{key: key, value: value}
}

// OperationTag returns a new operation tag.
func OperationTag(value string) Tag {
	return tagImpl{key: OperationTagName, value: value}
}

// ScenarioTag returns a new scenario tag.
func ScenarioTag(value string) Tag {
	return tagImpl{key: ScenarioTagName, value: value}
}

// QueueNameTag returns a new queue name tag.
func QueueNameTag(value string) Tag {
	return tagImpl{key: QueueNameTagName, value: value}
}

// StatusTag returns a new status tag.
func StatusTag(value string) Tag {
	return tagImpl{key: StatusTagName, value: value}
}

// RunIDTag returns a new run id tag.
func RunIDTag(value string) Tag {
	return tagImpl{key: RunIDTagName, value: value}
}

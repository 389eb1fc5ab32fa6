package domain

// Label and color of a status as shown in the console and the app.
type Label struct {
	Status Status `json:"status"`
	Text   string `json:"label"`
	Color  string `json:"color"`
}

var sharedLabels = map[Status]Label{
	StatusOrderReceived:     {Text: "접수완료", Color: "#9E9E9E"},
	StatusDispatchCompleted: {Text: "배차완료", Color: "#2196F3"},
	StatusPostponed:         {Text: "배송연기", Color: "#FF9800"},
	StatusCancelled:         {Text: "배송취소", Color: "#F44336"},
}

var pathLabels = map[Status]Label{
	StatusInDelivery:          {Text: "배송중", Color: "#3F51B5"},
	StatusDeliveryCompleted:   {Text: "배송완료", Color: "#4CAF50"},
	StatusInCollection:        {Text: "수거중", Color: "#3F51B5"},
	StatusCollectionCompleted: {Text: "수거완료", Color: "#4CAF50"},
	StatusInProcessing:        {Text: "처리중", Color: "#3F51B5"},
	StatusProcessingCompleted: {Text: "처리완료", Color: "#4CAF50"},
}

const unknownColor = "#607D8B"

func lookupLabel(s Status) (Label, bool) {
	if l, ok := sharedLabels[s]; ok {
		return l, true
	}
	l, ok := pathLabels[s]
	return l, ok
}

// typeLabels word the shared postponed status after the request's own work.
var typeLabels = map[RequestType]map[Status]string{
	RequestCollection:  {StatusPostponed: "수거연기"},
	RequestRemediation: {StatusPostponed: "처리연기"},
}

// LabelFor returns the human-facing label of s for a request of type t.
// Unknown codes come back unchanged.
func LabelFor(s Status, t RequestType) string {
	if text, ok := typeLabels[t][s]; ok {
		return text
	}
	if l, ok := lookupLabel(s); ok {
		return l.Text
	}
	return string(s)
}

// ColorFor returns the badge color of s.
func ColorFor(s Status) string {
	if l, ok := lookupLabel(s); ok {
		return l.Color
	}
	return unknownColor
}

// Vocabulary lists the statuses a delivery of type t can hold, path first.
func Vocabulary(t RequestType) []Label {
	p, ok := paths[t]
	if !ok {
		return nil
	}
	out := make([]Label, 0, len(p)+2)
	for _, s := range append(p[:], StatusPostponed, StatusCancelled) {
		out = append(out, Label{Status: s, Text: LabelFor(s, t), Color: ColorFor(s)})
	}
	return out
}

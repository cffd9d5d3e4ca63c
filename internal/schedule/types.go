package schedule

// Translations maps a UI region (header, nav, schedule, grades, teachers,
// footer) to its localized labels.
type Translations map[string]map[string]string

// Get returns the label stored under region/label. Empty labels count as
// missing.
func (t Translations) Get(region, label string) (string, bool) {
	labels, ok := t[region]
	if !ok {
		return "", false
	}
	s, ok := labels[label]
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Has reports whether the region was present in the loaded file.
func (t Translations) Has(region string) bool {
	_, ok := t[region]
	return ok
}

// Lesson is one scheduled pair.
type Lesson struct {
	Time    string `json:"time"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
	Room    string `json:"room,omitempty"`
	// Week restricts the lesson to one parity. Empty means every week.
	Week Parity `json:"week,omitempty"`
}

// Day holds the ordered lessons of a single day.
type Day struct {
	Pairs []Lesson `json:"pairs"`
}

// Schedule maps day keys to their lessons.
type Schedule struct {
	Days map[string]Day `json:"days"`
}

// Document is the top-level shape of the schedule file.
type Document struct {
	Schedule *Schedule `json:"schedule"`
}

// Day looks up a day record. It is safe to call on a nil document.
func (d *Document) Day(key string) (Day, bool) {
	if d == nil || d.Schedule == nil || d.Schedule.Days == nil {
		return Day{}, false
	}
	day, ok := d.Schedule.Days[key]
	return day, ok
}

// HasDays reports whether the document carries a days table at all.
func (d *Document) HasDays() bool {
	return d != nil && d.Schedule != nil && d.Schedule.Days != nil
}

// Teacher is one entry of the teacher roster.
type Teacher struct {
	Name    string `json:"name"`
	Subject string `json:"subject,omitempty"`
	Contact string `json:"contact,omitempty"`
}

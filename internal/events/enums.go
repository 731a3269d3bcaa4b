package events

type Category string

const (
	CategoryConcert    Category = "concert"
	CategorySports     Category = "sports"
	CategoryTheater    Category = "theater"
	CategoryConference Category = "conference"
	CategoryFestival   Category = "festival"
	CategoryWorkshop   Category = "workshop"
	CategoryOther      Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryConcert, CategorySports, CategoryTheater, CategoryConference,
		CategoryFestival, CategoryWorkshop, CategoryOther:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

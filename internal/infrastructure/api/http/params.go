package http

const (
	ProjectIDParam = "projectID"
)

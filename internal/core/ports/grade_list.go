package ports

import "go.trai.ch/hue/internal/core/domain"

// GradeListReader reads externally authored grade decision lists.
//
//go:generate mockgen -source=grade_list.go -destination=mocks/mock_grade_list.go -package=mocks
type GradeListReader interface {
	// Read returns the decision identified by id from the list at path. An empty
	// id selects the first decision.
	Read(path, id string) (domain.CDL, error)
}

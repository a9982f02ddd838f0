package compliance

import "errors"

var (
	ErrInvalidTemplateID = errors.New("compliance: invalid template id")
	ErrTemplateNotFound  = errors.New("compliance: template not found")
	ErrListItemNotFound  = errors.New("compliance: list item not found")
)

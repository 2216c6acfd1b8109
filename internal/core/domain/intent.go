package domain

import (
	"fmt"
	"strings"
)

// Actions a modification intent can request.
const (
	ActionAdd    = "add"
	ActionUpdate = "update"
	ActionRemove = "remove"
	ActionSet    = "set"
)

// UnknownField is the sentinel the intent parser emits for required fields
// it could not determine. Intents carrying it are rejected by validation.
const UnknownField = "unknown"

// Intent is one structured modification request. It is produced by the
// intent parser and consumed once by the patch generator; the core never
// mutates it.
type Intent struct {
	Action        string     `json:"action" yaml:"action"`
	ResourceType  string     `json:"resource_type" yaml:"resourceType"`
	TargetField   string     `json:"target_field" yaml:"targetField"`
	Value         any        `json:"value,omitempty" yaml:"value,omitempty"`
	Namespace     string     `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	LabelSelector string     `json:"label_selector,omitempty" yaml:"labelSelector,omitempty"`
	Conditions    Conditions `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
}

// Conditions narrow which parts of a matched object an intent touches.
type Conditions struct {
	OnlyIfMissing bool   `json:"only_if_missing,omitempty" yaml:"onlyIfMissing,omitempty"`
	ContainerName string `json:"container_name,omitempty" yaml:"containerName,omitempty"`
}

func (i Intent) String() string {
	return fmt.Sprintf("Intent{action=%s, resource=%s, field=%s, namespace=%s}",
		i.Action, i.ResourceType, i.TargetField, i.Namespace)
}

// ResourceQuery selects which objects a scanner should return for an intent.
type ResourceQuery struct {
	ResourceType  string
	Namespace     string
	LabelSelector string
}

// QueryForIntent builds the scan query for an intent. Explicit overrides
// (for example from CLI flags) take precedence over the namespace and
// label selector the parser extracted from the request.
func QueryForIntent(intent Intent, namespaceOverride, selectorOverride string) ResourceQuery {
	namespace := intent.Namespace
	if namespaceOverride != "" {
		namespace = namespaceOverride
	}

	selector := intent.LabelSelector
	if selectorOverride != "" {
		selector = selectorOverride
	}

	return ResourceQuery{
		ResourceType:  strings.ToLower(intent.ResourceType),
		Namespace:     namespace,
		LabelSelector: selector,
	}
}

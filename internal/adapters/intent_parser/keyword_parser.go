package intent_parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"kustomate/internal/core/domain"
	"kustomate/internal/ports"
)

var _ ports.IntentParser = (*KeywordParser)(nil)

// KeywordParser is a deterministic fallback used when no language model is
// configured. It recognises a handful of common phrasings by keyword and
// never calls out anywhere.
type KeywordParser struct{}

func NewKeywordParser() *KeywordParser {
	return &KeywordParser{}
}

var namespacePattern = regexp.MustCompile(`\bin\s+([a-z0-9][a-z0-9-]*)\s*$`)

func (p *KeywordParser) Parse(_ context.Context, request string) ([]domain.Intent, error) {
	lowered := strings.ToLower(strings.TrimSpace(request))
	if lowered == "" {
		return nil, fmt.Errorf("empty request")
	}

	intent := domain.Intent{
		Action:       detectAction(lowered),
		ResourceType: detectResourceType(lowered),
		TargetField:  detectTargetField(lowered),
		Description:  request,
	}

	if match := namespacePattern.FindStringSubmatch(lowered); match != nil {
		intent.Namespace = match[1]
	}

	return []domain.Intent{intent}, nil
}

func detectAction(request string) string {
	switch {
	case strings.Contains(request, "remove") || strings.Contains(request, "delete"):
		return domain.ActionRemove
	case strings.Contains(request, "update") || strings.Contains(request, "change") || strings.Contains(request, "replace"):
		return domain.ActionUpdate
	case strings.Contains(request, "add") || strings.Contains(request, "set"):
		return domain.ActionAdd
	default:
		return domain.UnknownField
	}
}

func detectResourceType(request string) string {
	switch {
	case strings.Contains(request, "deployment"):
		return "deployments"
	case strings.Contains(request, "pod"):
		return "pods"
	case strings.Contains(request, "service"):
		return "services"
	case strings.Contains(request, "configmap"):
		return "configmaps"
	case strings.Contains(request, "all") || strings.Contains(request, "everything"):
		return "all"
	default:
		return domain.UnknownField
	}
}

func detectTargetField(request string) string {
	switch {
	case strings.Contains(request, "memory"):
		return "resources.limits.memory"
	case strings.Contains(request, "cpu"):
		return "resources.limits.cpu"
	case strings.Contains(request, "image"):
		return "image"
	case strings.Contains(request, "replica") || strings.Contains(request, "scale"):
		return "replicas"
	case strings.Contains(request, "annotation"):
		return "annotations"
	case strings.Contains(request, "label"):
		return "labels"
	case strings.Contains(request, "probe") || strings.Contains(request, "health"):
		return "livenessProbe"
	case strings.Contains(request, "security"):
		return "securityContext"
	default:
		return domain.UnknownField
	}
}

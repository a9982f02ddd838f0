package compliance

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Resolver は職種コードやテンプレートから提出が必要な書類名を解決します。
type Resolver struct {
	repo Repository
}

// RequirementResolver は要件解決ユースケースの公開インターフェースです。
type RequirementResolver interface {
	ResolveRequiredDocuments(ctx context.Context, occupationCode string) ([]string, error)
	ResolveTemplateItems(ctx context.Context, templateID string) ([]string, error)
}

// NewResolver は Resolver を生成します。
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveRequiredDocuments は職種コードに適用される全テンプレートを集約し、
// 有効な書類要件名の集合を返します。職種コードが空の場合、および該当する
// テンプレート・項目が存在しない場合は空集合を返します (エラーにはしません)。
func (r *Resolver) ResolveRequiredDocuments(ctx context.Context, occupationCode string) ([]string, error) {
	code := strings.TrimSpace(occupationCode)
	if code == "" {
		return nil, nil
	}

	templates, err := r.repo.FindTemplatesByOccupation(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("resolve templates for %s: %w", code, err)
	}

	seen := make(map[string]struct{})
	var itemIDs []string
	for _, tpl := range templates {
		for _, id := range tpl.ListItemIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			itemIDs = append(itemIDs, id)
		}
	}

	return r.activeItemNames(ctx, itemIDs)
}

// ResolveTemplateItems は単一テンプレートの有効な書類要件名を返します。
// テンプレートが存在しない場合は ErrTemplateNotFound を返し、フォールバック
// の判断は呼び出し側に委ねます。
func (r *Resolver) ResolveTemplateItems(ctx context.Context, templateID string) ([]string, error) {
	id := strings.TrimSpace(templateID)
	if id == "" {
		return nil, ErrInvalidTemplateID
	}

	tpl, err := r.repo.FindTemplateByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return r.activeItemNames(ctx, tpl.ListItemIDs)
}

// activeItemNames は項目 id 群を名前集合へ変換します。存在しない id と
// 無効化された項目は除外されます。結果は重複なしの昇順です。
func (r *Resolver) activeItemNames(ctx context.Context, itemIDs []string) ([]string, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	items, err := r.repo.FindListItemsByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve list items: %w", err)
	}

	names := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item == nil || !item.IsActive {
			continue
		}
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		names[name] = struct{}{}
	}

	if len(names) == 0 {
		return nil, nil
	}

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	sort.Strings(result)
	return result, nil
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/compliance"
	pgdb "github.com/ogurasousui/staffing-readiness-engine/internal/platform/db/postgres"
)

// CatalogRepository は PostgreSQL を利用したコンプライアンスカタログの実装です。
type CatalogRepository struct {
	pool pgdb.Queryer
}

// NewCatalogRepository は CatalogRepository を生成します。
func NewCatalogRepository(pool pgdb.Queryer) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

const templateSelectColumns = `
        SELECT t.id,
               t.name,
               t.occupation_codes,
               COALESCE(array_agg(ti.list_item_id ORDER BY ti.position) FILTER (WHERE ti.list_item_id IS NOT NULL), '{}'),
               t.created_at,
               t.updated_at
          FROM compliance_templates t
          LEFT JOIN compliance_template_items ti ON ti.template_id = t.id
`

// FindTemplateByID は ID でテンプレートを取得します。
func (r *CatalogRepository) FindTemplateByID(ctx context.Context, id string) (*compliance.Template, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, templateSelectColumns+`
         WHERE t.id = $1
         GROUP BY t.id
    `, id)

	tpl, err := scanTemplate(row)
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

// FindTemplatesByOccupation は職種コードを対象に含む全テンプレートを取得します。
func (r *CatalogRepository) FindTemplatesByOccupation(ctx context.Context, occupationCode string) ([]*compliance.Template, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, templateSelectColumns+`
         WHERE $1 = ANY(t.occupation_codes)
         GROUP BY t.id
         ORDER BY t.created_at, t.id
    `, occupationCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*compliance.Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// FindListItemsByIDs は id 群に対応する書類要件項目を取得します。存在しない
// id は結果に含まれないだけで、エラーにはなりません。
func (r *CatalogRepository) FindListItemsByIDs(ctx context.Context, ids []string) ([]*compliance.ListItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, name, is_active, created_at, updated_at
          FROM compliance_list_items
         WHERE id = ANY($1)
         ORDER BY name
    `, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*compliance.ListItem
	for rows.Next() {
		var (
			item      compliance.ListItem
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		item.CreatedAt = createdAt
		item.UpdatedAt = updatedAt
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func scanTemplate(row pgx.Row) (*compliance.Template, error) {
	var (
		id              string
		name            string
		occupationCodes []string
		listItemIDs     []string
		createdAt       time.Time
		updatedAt       time.Time
	)

	if err := row.Scan(
		&id,
		&name,
		&occupationCodes,
		&listItemIDs,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, compliance.ErrTemplateNotFound
		}
		return nil, err
	}

	return &compliance.Template{
		ID:              id,
		Name:            name,
		OccupationCodes: occupationCodes,
		ListItemIDs:     listItemIDs,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ogurasousui/staffing-readiness-engine/internal/fixture"
	"github.com/ogurasousui/staffing-readiness-engine/internal/platform/config"
	pg "github.com/ogurasousui/staffing-readiness-engine/internal/platform/db/postgres"
)

func main() {
	ctx := context.Background()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	ds, err := fixture.Load()
	if err != nil {
		log.Fatalf("failed to load fixture dataset: %v", err)
	}

	if err := seed(ctx, dbPool, ds); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	log.Printf("seeded %d list items, %d templates, %d candidates, %d jobs",
		len(ds.ListItems), len(ds.Templates), len(ds.Candidates), len(ds.Jobs))
}

// seed は固定データセットを投入します。既存行は上書きされるため、何度
// 実行しても同じ状態に収束します。
func seed(ctx context.Context, pool *pgxpool.Pool, ds *fixture.Dataset) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	for _, item := range ds.ListItems {
		if _, err := tx.Exec(ctx, `
            INSERT INTO compliance_list_items (id, name, is_active, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $4)
            ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at
        `, item.ID, item.Name, item.IsActive, now); err != nil {
			return err
		}
	}

	for _, tpl := range ds.Templates {
		if _, err := tx.Exec(ctx, `
            INSERT INTO compliance_templates (id, name, occupation_codes, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $4)
            ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, occupation_codes = EXCLUDED.occupation_codes, updated_at = EXCLUDED.updated_at
        `, tpl.ID, tpl.Name, tpl.OccupationCodes, now); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM compliance_template_items WHERE template_id = $1`, tpl.ID); err != nil {
			return err
		}
		for i, itemID := range tpl.ItemIDs {
			if _, err := tx.Exec(ctx, `
                INSERT INTO compliance_template_items (template_id, list_item_id, position)
                VALUES ($1, $2, $3)
            `, tpl.ID, itemID, i); err != nil {
				return err
			}
		}
	}

	for _, c := range ds.Candidates {
		var phone any
		if c.Phone != "" {
			phone = c.Phone
		}
		if _, err := tx.Exec(ctx, `
            INSERT INTO candidates (id, name, phone, basic_info_provided, professional_info_provided,
                                    occupation_code, skills, specialties, profile_completion_pct,
                                    created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
            ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name,
                                           phone = EXCLUDED.phone,
                                           basic_info_provided = EXCLUDED.basic_info_provided,
                                           professional_info_provided = EXCLUDED.professional_info_provided,
                                           occupation_code = EXCLUDED.occupation_code,
                                           skills = EXCLUDED.skills,
                                           specialties = EXCLUDED.specialties,
                                           profile_completion_pct = EXCLUDED.profile_completion_pct,
                                           updated_at = EXCLUDED.updated_at
        `, c.ID, c.Name, phone, c.BasicInfoProvided, c.ProfessionalInfoProvided,
			c.OccupationCode, c.Skills, c.Specialties, c.ProfileCompletionPct, now); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM candidate_documents WHERE candidate_id = $1`, c.ID); err != nil {
			return err
		}
		for i, doc := range c.Documents {
			if _, err := tx.Exec(ctx, `
                INSERT INTO candidate_documents (candidate_id, document_type, status, position)
                VALUES ($1, $2, $3, $4)
            `, c.ID, doc.Type, doc.Status, i); err != nil {
				return err
			}
		}
	}

	for _, j := range ds.Jobs {
		var templateID any
		if j.TemplateID != "" {
			templateID = j.TemplateID
		}
		if _, err := tx.Exec(ctx, `
            INSERT INTO jobs (id, title, department, requirements, tags, template_id, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
            ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title,
                                           department = EXCLUDED.department,
                                           requirements = EXCLUDED.requirements,
                                           tags = EXCLUDED.tags,
                                           template_id = EXCLUDED.template_id,
                                           updated_at = EXCLUDED.updated_at
        `, j.ID, j.Title, j.Department, j.Requirements, j.Tags, templateID, now); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

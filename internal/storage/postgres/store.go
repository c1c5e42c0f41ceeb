package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubfund/internal/model"
)

// Store persists aggregated view records into Postgres for off-chain
// reporting. It is an export sink only: the aggregation path never reads
// from it, so on-chain state stays the single source of truth.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the snapshot tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clubfund_organizations (
			address TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			mission TEXT NOT NULL,
			created TEXT NOT NULL,
			admin TEXT NOT NULL,
			member_count BIGINT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS clubfund_campaigns (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			goal TEXT NOT NULL,
			collected TEXT NOT NULL,
			deadline TEXT NOT NULL,
			funding_type TEXT NOT NULL,
			status TEXT NOT NULL,
			organization_address TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS clubfund_expenses (
			id BIGINT PRIMARY KEY,
			description TEXT NOT NULL,
			amount TEXT NOT NULL,
			receipt_url TEXT NOT NULL,
			requester_address TEXT NOT NULL,
			campaign_id BIGINT NOT NULL,
			campaign_name TEXT NOT NULL,
			status TEXT NOT NULL,
			submitted TEXT NOT NULL,
			required_approvals BIGINT NOT NULL,
			approval_count BIGINT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// UpsertOrganizations inserts or updates organization snapshot rows.
func (s *Store) UpsertOrganizations(ctx context.Context, records []model.OrganizationView) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, record := range records {
		batch.Queue(`
			INSERT INTO clubfund_organizations (
				address, name, description, mission, created, admin, member_count, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, now())
			ON CONFLICT (address)
			DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				mission = EXCLUDED.mission,
				created = EXCLUDED.created,
				admin = EXCLUDED.admin,
				member_count = EXCLUDED.member_count,
				updated_at = now()
		`,
			record.Address,
			record.Name,
			record.Description,
			record.Mission,
			record.Created,
			record.Admin,
			int64(record.MemberCount),
		)
	}
	return s.sendBatch(ctx, batch, len(records))
}

// UpsertCampaigns inserts or updates campaign snapshot rows.
func (s *Store) UpsertCampaigns(ctx context.Context, records []model.CampaignView) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, record := range records {
		batch.Queue(`
			INSERT INTO clubfund_campaigns (
				id, name, description, goal, collected, deadline, funding_type, status, organization_address, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
			ON CONFLICT (id)
			DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				goal = EXCLUDED.goal,
				collected = EXCLUDED.collected,
				deadline = EXCLUDED.deadline,
				funding_type = EXCLUDED.funding_type,
				status = EXCLUDED.status,
				organization_address = EXCLUDED.organization_address,
				updated_at = now()
		`,
			int64(record.ID),
			record.Name,
			record.Description,
			record.Goal,
			record.Collected,
			record.Deadline,
			record.FundingType,
			record.Status,
			record.OrganizationAddress,
		)
	}
	return s.sendBatch(ctx, batch, len(records))
}

// UpsertExpenses inserts or updates expense snapshot rows.
func (s *Store) UpsertExpenses(ctx context.Context, records []model.ExpenseView) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, record := range records {
		batch.Queue(`
			INSERT INTO clubfund_expenses (
				id, description, amount, receipt_url, requester_address, campaign_id,
				campaign_name, status, submitted, required_approvals, approval_count, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
			ON CONFLICT (id)
			DO UPDATE SET
				description = EXCLUDED.description,
				amount = EXCLUDED.amount,
				receipt_url = EXCLUDED.receipt_url,
				requester_address = EXCLUDED.requester_address,
				campaign_id = EXCLUDED.campaign_id,
				campaign_name = EXCLUDED.campaign_name,
				status = EXCLUDED.status,
				submitted = EXCLUDED.submitted,
				required_approvals = EXCLUDED.required_approvals,
				approval_count = EXCLUDED.approval_count,
				updated_at = now()
		`,
			int64(record.ID),
			record.Description,
			record.Amount,
			record.ReceiptURL,
			record.RequesterAddress,
			int64(record.CampaignID),
			record.CampaignName,
			record.Status,
			record.Submitted,
			int64(record.RequiredApprovals),
			int64(record.ApprovalCount),
		)
	}
	return s.sendBatch(ctx, batch, len(records))
}

func (s *Store) sendBatch(ctx context.Context, batch *pgx.Batch, n int) error {
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < n; i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Bootstrap DDL. Timestamps are stored UTC (timestamptz); the demographics
// and lab_orders columns carry the legacy duck-typed document fields as-is,
// normalized in Go at read time.
const schema = `
create table if not exists users (
	id            bigserial primary key,
	username      text not null unique,
	password_hash text not null,
	first_name    text not null,
	last_name     text not null,
	phone         text not null default '',
	role          text not null default 'เจ้าหน้าที่',
	is_active     boolean not null default true,
	created_at    timestamptz not null default now()
);

create table if not exists patients (
	id           bigserial primary key,
	first_name   text not null,
	last_name    text not null,
	phone        text not null default '',
	gender       text not null default '',
	address      text not null default '',
	demographics jsonb not null default '{}',
	created_at   timestamptz not null default now(),
	updated_at   timestamptz not null default now()
);

create table if not exists visits (
	id             bigserial primary key,
	patient_id     bigint references patients(id),
	patient_name   text not null default '',
	visit_number   text not null default '',
	visit_type     text not null default '',
	department     text not null default '',
	patient_rights text not null default '',
	status         text not null default 'รอตรวจ',
	created_at     timestamptz not null default now()
);

create table if not exists orders (
	id             bigserial primary key,
	visit_id       bigint references visits(id),
	lab_orders     jsonb not null default '[]',
	total_amount   numeric(12,2) not null default 0,
	payment_method text not null default '',
	status         text not null default 'process',
	order_date     timestamptz not null default now(),
	created_at     timestamptz not null default now()
);

create index if not exists idx_patients_created_at on patients (created_at);
create index if not exists idx_visits_created_at on visits (created_at);
create index if not exists idx_visits_patient_id on visits (patient_id);
create index if not exists idx_orders_order_date on orders (order_date);
create index if not exists idx_orders_visit_id on orders (visit_id);
`

// Migrate applies the bootstrap schema. Statements are idempotent so startup
// can run it unconditionally.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}

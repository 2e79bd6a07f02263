package postgres

// schemaDDL creates the tables this service reads and writes. The users table
// belongs to the account service; it is created here only so local runs and
// integration tests have the foreign keys to cascade through.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
    id          UUID PRIMARY KEY,
    email       TEXT NOT NULL,
    first_name  TEXT NOT NULL DEFAULT '',
    surname     TEXT NOT NULL DEFAULT '',
    role        TEXT NOT NULL DEFAULT '',
    provenance  TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS artefacts (
    id            UUID PRIMARY KEY,
    location_id   TEXT NOT NULL,
    list_type_id  INTEGER NOT NULL,
    content_date  TIMESTAMPTZ NOT NULL,
    sensitivity   TEXT NOT NULL,
    language      TEXT NOT NULL,
    display_from  TIMESTAMPTZ NOT NULL,
    display_to    TIMESTAMPTZ NOT NULL,
    provenance    TEXT NOT NULL,
    is_flat_file  BOOLEAN NOT NULL DEFAULT FALSE,
    no_match      BOOLEAN NOT NULL DEFAULT FALSE,
    payload       BYTEA,
    created_at    TIMESTAMPTZ NOT NULL,
    CONSTRAINT artefacts_window CHECK (display_from <= display_to)
);
CREATE INDEX IF NOT EXISTS idx_artefacts_location ON artefacts (location_id, display_to);
CREATE INDEX IF NOT EXISTS idx_artefacts_list_type ON artefacts (list_type_id, display_to);

CREATE TABLE IF NOT EXISTS ingestion_logs (
    id             UUID PRIMARY KEY,
    timestamp      TIMESTAMPTZ NOT NULL,
    source_system  TEXT NOT NULL,
    court_id       TEXT NOT NULL,
    status         TEXT NOT NULL,
    error_message  TEXT,
    artefact_id    UUID,
    CONSTRAINT ingestion_logs_artefact CHECK ((status = 'SUCCESS') = (artefact_id IS NOT NULL))
);
CREATE INDEX IF NOT EXISTS idx_ingestion_logs_timestamp ON ingestion_logs (timestamp);

CREATE TABLE IF NOT EXISTS subscriptions (
    id           UUID PRIMARY KEY,
    user_id      UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    location_id  TEXT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL,
    UNIQUE (user_id, location_id)
);
CREATE INDEX IF NOT EXISTS idx_subscriptions_location ON subscriptions (location_id);

CREATE TABLE IF NOT EXISTS subscription_list_types (
    id            UUID PRIMARY KEY,
    user_id       UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    list_type_id  INTEGER NOT NULL,
    languages     TEXT[] NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL,
    UNIQUE (user_id, list_type_id)
);
CREATE INDEX IF NOT EXISTS idx_subscription_list_types_list_type ON subscription_list_types (list_type_id);

CREATE TABLE IF NOT EXISTS notification_logs (
    id               TEXT PRIMARY KEY,
    subscription_id  UUID NOT NULL,
    user_id          UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    publication_id   UUID NOT NULL,
    location_id      TEXT NOT NULL,
    status           TEXT NOT NULL,
    gateway_id       TEXT,
    error_message    TEXT,
    created_at       TIMESTAMPTZ NOT NULL,
    sent_at          TIMESTAMPTZ,
    failed_at        TIMESTAMPTZ,
    UNIQUE (subscription_id, publication_id)
);
CREATE INDEX IF NOT EXISTS idx_notification_logs_publication ON notification_logs (publication_id);
`

package mysql

// One keyed-document table holds every collection; the primary key is
// (collection, id). Documents are the same JSON blobs the bolt backend
// stores, so the two drivers are interchangeable.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS records (
  collection VARCHAR(64)  NOT NULL,
  id         VARCHAR(64)  NOT NULL,
  doc        JSON         NOT NULL,
  updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  PRIMARY KEY (collection, id)
)
`

const putSQL = `
INSERT INTO records (collection, id, doc)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  doc        = VALUES(doc),
  updated_at = CURRENT_TIMESTAMP
`

const getSQL = `SELECT doc FROM records WHERE collection = ? AND id = ?`

const deleteSQL = `DELETE FROM records WHERE collection = ? AND id = ?`

const listSQL = `SELECT doc FROM records WHERE collection = ?`

const existsSQL = `SELECT EXISTS(SELECT 1 FROM records WHERE collection = ?)`

package mysql

const createListingsSQL = `
CREATE TABLE IF NOT EXISTS listings (
  id              BIGINT AUTO_INCREMENT PRIMARY KEY,
  listing_id      VARCHAR(64)  NOT NULL,
  title           TEXT         NOT NULL,
  page_name       VARCHAR(255) NOT NULL,
  amount_per_stay VARCHAR(64)  NOT NULL,
  location        VARCHAR(255) NOT NULL,
  checkin         DATE         NOT NULL,
  checkout        DATE         NOT NULL,
  fetched_at      TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  UNIQUE KEY uq_listing_stay (listing_id, checkin, checkout),
  KEY idx_location_fetched (location, fetched_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const insertListingsPrefix = "INSERT INTO listings\n  (listing_id, title, page_name, amount_per_stay, location, checkin, checkout)\nVALUES "

// A re-fetched listing keeps its row; title and price follow the latest search.
const insertListingsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  title           = VALUES(title),\n" +
	"  page_name       = VALUES(page_name),\n" +
	"  amount_per_stay = VALUES(amount_per_stay),\n" +
	"  location        = VALUES(location),\n" +
	"  fetched_at      = CURRENT_TIMESTAMP\n"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const listByLocationSQL = `
SELECT
  listing_id,
  title,
  page_name,
  amount_per_stay,
  location,
  DATE_FORMAT(checkin, '%Y-%m-%d'),
  DATE_FORMAT(checkout, '%Y-%m-%d'),
  fetched_at
FROM listings
WHERE location = ?
ORDER BY fetched_at DESC, id DESC
LIMIT ?
`

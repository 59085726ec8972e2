package journal

const Schema = `
CREATE TABLE IF NOT EXISTS closed_lots (
	lot_id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL DEFAULT '',
	symbol TEXT NOT NULL,
	position_type TEXT NOT NULL,
	open_trade_id TEXT NOT NULL,
	close_trade_id TEXT NOT NULL,
	quantity TEXT NOT NULL,
	open_price TEXT NOT NULL,
	close_price TEXT NOT NULL,
	opened_at DATETIME NOT NULL,
	closed_at DATETIME NOT NULL,
	realized_pnl TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_pnl (
	account_id TEXT NOT NULL DEFAULT '',
	date DATETIME NOT NULL,
	daily_pnl TEXT NOT NULL,
	cumulative_pnl TEXT NOT NULL,
	lots_closed INTEGER NOT NULL,
	PRIMARY KEY (account_id, date)
);

CREATE TABLE IF NOT EXISTS aggregates (
	account_id TEXT PRIMARY KEY DEFAULT '',
	total_pnl TEXT NOT NULL,
	total_lots INTEGER NOT NULL,
	winning_lots INTEGER NOT NULL,
	losing_lots INTEGER NOT NULL,
	total_gains TEXT NOT NULL,
	total_losses TEXT NOT NULL,
	win_rate TEXT,
	profit_factor TEXT,
	average_gain TEXT,
	average_loss TEXT,
	best_symbol TEXT,
	best_symbol_pnl TEXT,
	worst_symbol TEXT,
	worst_symbol_pnl TEXT,
	best_weekday TEXT,
	best_weekday_pnl TEXT,
	worst_weekday TEXT,
	worst_weekday_pnl TEXT,
	first_date DATETIME,
	last_date DATETIME
);

CREATE INDEX IF NOT EXISTS idx_lots_account ON closed_lots(account_id);
CREATE INDEX IF NOT EXISTS idx_lots_closed_at ON closed_lots(closed_at);
CREATE INDEX IF NOT EXISTS idx_daily_date ON daily_pnl(date);
`

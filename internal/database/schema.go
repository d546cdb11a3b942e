package database

// Foreign keys carry no ON DELETE actions; cascades are performed
// explicitly by the services inside one transaction.
// hotspots.target_scene_id is deliberately not a foreign key.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS icons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		category TEXT NOT NULL CHECK (category IN ('system', 'custom')),
		owner_id INTEGER REFERENCES users(id),
		CHECK ((category = 'system' AND owner_id IS NULL) OR (category = 'custom' AND owner_id IS NOT NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_icons_category_owner ON icons(category, owner_id)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		cover_url TEXT,
		owner_id INTEGER NOT NULL REFERENCES users(id),
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_owner_updated ON projects(owner_id, updated_at)`,
	`CREATE TABLE IF NOT EXISTS scene_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		project_id INTEGER NOT NULL REFERENCES projects(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scene_groups_project ON scene_groups(project_id)`,
	`CREATE TABLE IF NOT EXISTS scenes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		image_url TEXT NOT NULL,
		cover_url TEXT,
		group_id INTEGER NOT NULL REFERENCES scene_groups(id),
		sort_order INTEGER NOT NULL DEFAULT 0,
		initial_heading REAL NOT NULL DEFAULT 0,
		initial_pitch REAL NOT NULL DEFAULT 0,
		fov_min REAL NOT NULL DEFAULT 30,
		fov_max REAL NOT NULL DEFAULT 120,
		fov_default REAL NOT NULL DEFAULT 75,
		h_limit_min REAL NOT NULL DEFAULT -180,
		h_limit_max REAL NOT NULL DEFAULT 180,
		v_limit_min REAL NOT NULL DEFAULT -90,
		v_limit_max REAL NOT NULL DEFAULT 90
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scenes_group_order ON scenes(group_id, sort_order)`,
	`CREATE TABLE IF NOT EXISTS hotspots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_scene_id INTEGER NOT NULL REFERENCES scenes(id),
		x REAL NOT NULL,
		y REAL NOT NULL,
		z REAL NOT NULL,
		text TEXT,
		type TEXT NOT NULL DEFAULT 'scene',
		content TEXT,
		target_scene_id INTEGER,
		icon_url TEXT,
		scale REAL NOT NULL DEFAULT 1,
		fixed_size BOOLEAN NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_hotspots_source ON hotspots(source_scene_id)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS icons (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		url VARCHAR(1024) NOT NULL,
		category VARCHAR(16) NOT NULL,
		owner_id BIGINT NULL,
		INDEX idx_icons_category_owner (category, owner_id),
		CONSTRAINT fk_icons_owner FOREIGN KEY (owner_id) REFERENCES users(id),
		CONSTRAINT chk_icons_category CHECK ((category = 'system' AND owner_id IS NULL) OR (category = 'custom' AND owner_id IS NOT NULL))
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS projects (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(255) NOT NULL DEFAULT '',
		cover_url VARCHAR(1024) NULL,
		owner_id BIGINT NOT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		INDEX idx_projects_owner_updated (owner_id, updated_at),
		CONSTRAINT fk_projects_owner FOREIGN KEY (owner_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS scene_groups (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		project_id BIGINT NOT NULL,
		INDEX idx_scene_groups_project (project_id),
		CONSTRAINT fk_scene_groups_project FOREIGN KEY (project_id) REFERENCES projects(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS scenes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		image_url VARCHAR(1024) NOT NULL,
		cover_url VARCHAR(1024) NULL,
		group_id BIGINT NOT NULL,
		sort_order INT NOT NULL DEFAULT 0,
		initial_heading DOUBLE NOT NULL DEFAULT 0,
		initial_pitch DOUBLE NOT NULL DEFAULT 0,
		fov_min DOUBLE NOT NULL DEFAULT 30,
		fov_max DOUBLE NOT NULL DEFAULT 120,
		fov_default DOUBLE NOT NULL DEFAULT 75,
		h_limit_min DOUBLE NOT NULL DEFAULT -180,
		h_limit_max DOUBLE NOT NULL DEFAULT 180,
		v_limit_min DOUBLE NOT NULL DEFAULT -90,
		v_limit_max DOUBLE NOT NULL DEFAULT 90,
		INDEX idx_scenes_group_order (group_id, sort_order),
		CONSTRAINT fk_scenes_group FOREIGN KEY (group_id) REFERENCES scene_groups(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS hotspots (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		source_scene_id BIGINT NOT NULL,
		x DOUBLE NOT NULL,
		y DOUBLE NOT NULL,
		z DOUBLE NOT NULL,
		text TEXT NULL,
		type VARCHAR(16) NOT NULL DEFAULT 'scene',
		content TEXT NULL,
		target_scene_id BIGINT NULL,
		icon_url VARCHAR(1024) NULL,
		scale DOUBLE NOT NULL DEFAULT 1,
		fixed_size BOOLEAN NOT NULL DEFAULT FALSE,
		INDEX idx_hotspots_source (source_scene_id),
		CONSTRAINT fk_hotspots_source FOREIGN KEY (source_scene_id) REFERENCES scenes(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

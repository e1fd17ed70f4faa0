package users

const selectColumns = `SELECT id, email, name, password_hash, created_at FROM users`

var postgresQueries = queries{
	create: `INSERT INTO users (email, name, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
	get:        selectColumns + ` WHERE id = $1`,
	getByEmail: selectColumns + ` WHERE email = $1`,
	getByName:  selectColumns + ` WHERE name = $1`,
}

var sqliteQueries = queries{
	create: `INSERT INTO users (email, name, password_hash, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
	get:        selectColumns + ` WHERE id = ?`,
	getByEmail: selectColumns + ` WHERE email = ?`,
	getByName:  selectColumns + ` WHERE name = ?`,
}

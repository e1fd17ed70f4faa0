package posts

const selectColumns = `SELECT id, author_id, title, subtitle, date, body, img_url FROM blog_posts`

var postgresQueries = queries{
	list:         selectColumns + ` ORDER BY id`,
	listByAuthor: selectColumns + ` WHERE author_id = $1 ORDER BY id`,
	get:          selectColumns + ` WHERE id = $1`,
	create: `INSERT INTO blog_posts (author_id, title, subtitle, date, body, img_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
	update: `UPDATE blog_posts SET
		   title    = COALESCE($2, title),
		   subtitle = COALESCE($3, subtitle),
		   body     = COALESCE($4, body),
		   img_url  = COALESCE($5, img_url)
		 WHERE id = $1`,
	delete: `DELETE FROM blog_posts WHERE id = $1`,
}

var sqliteQueries = queries{
	list:         selectColumns + ` ORDER BY id`,
	listByAuthor: selectColumns + ` WHERE author_id = ? ORDER BY id`,
	get:          selectColumns + ` WHERE id = ?`,
	create: `INSERT INTO blog_posts (author_id, title, subtitle, date, body, img_url)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id`,
	update: `UPDATE blog_posts SET
		   title    = COALESCE(?2, title),
		   subtitle = COALESCE(?3, subtitle),
		   body     = COALESCE(?4, body),
		   img_url  = COALESCE(?5, img_url)
		 WHERE id = ?1`,
	delete: `DELETE FROM blog_posts WHERE id = ?`,
}

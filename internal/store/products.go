package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// CreateProduct inserts a product and returns it with its new ID.
func (db *DB) CreateProduct(name, description, image string) (*Product, error) {
	if image == "" {
		image = DefaultProductImage
	}
	result, err := db.conn.Exec(
		"INSERT INTO products (name, description, image) VALUES (?, ?, ?)",
		name, description, image,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Product{ID: id, Name: name, Description: description, Image: image}, nil
}

// UpsertProduct inserts or replaces a product keeping its ID. Used by
// imports of existing data files.
func (db *DB) UpsertProduct(p *Product) error {
	_, err := db.conn.Exec(
		`INSERT INTO products (id, name, description, image) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name,
		 description = excluded.description, image = excluded.image`,
		p.ID, p.Name, p.Description, p.Image,
	)
	return err
}

// GetProduct returns a product by ID.
func (db *DB) GetProduct(id int64) (*Product, error) {
	row := db.conn.QueryRow("SELECT id, name, description, image FROM products WHERE id = ?", id)
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns all products ordered by ID.
func (db *DB) ListProducts() ([]Product, error) {
	rows, err := db.conn.Query("SELECT id, name, description, image FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Image); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// UpdateProduct changes the non-empty fields of a product.
func (db *DB) UpdateProduct(id int64, name, description, image string) (*Product, error) {
	p, err := db.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	if image != "" {
		p.Image = image
	}
	if _, err := db.conn.Exec(
		"UPDATE products SET name = ?, description = ?, image = ? WHERE id = ?",
		p.Name, p.Description, p.Image, id,
	); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes a product and, through the foreign key, all of its
// feedback.
func (db *DB) DeleteProduct(id int64) (*Product, error) {
	p, err := db.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if _, err := db.conn.Exec("DELETE FROM products WHERE id = ?", id); err != nil {
		return nil, err
	}
	return p, nil
}

// package models defines the data model for the collection mirror pipeline
package models

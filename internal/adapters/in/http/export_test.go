package http

var ParseFilter = parseFilter

package http

const CodeInternal = "INTERNAL_ERROR"

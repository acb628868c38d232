package google

import (
	"golang.org/x/oauth2"

	"github.com/guilherme-santos/csvcalendar"
)

func toOAuth2Token(tok *csvcalendar.Token) *oauth2.Token {
	if tok == nil {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry(),
	}
}

func fromOAuth2Token(tok *oauth2.Token) *csvcalendar.Token {
	res := &csvcalendar.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		res.Scope = scope
	}
	res.SetExpiry(tok.Expiry)
	return res
}

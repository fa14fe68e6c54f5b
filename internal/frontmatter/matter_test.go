package frontmatter

import (
	"testing"
	"time"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestDecode_TypedFields(t *testing.T) {
	raw := []byte(`title: Release Notes
description: What changed
slug: release-notes
draft: true
unlisted: false
date: 2024-03-01
tags:
  - releases
  - label: Long Form
    permalink: /long-form
authors:
  - jdoe
  - name: Guest Writer
    url: https://example.com
sidebar_position: 4
`)

	m, err := Decode("blog/release.md", raw)
	require.NoError(t, err)
	require.Equal(t, "Release Notes", m.Title)
	require.Equal(t, "What changed", m.Description)
	require.Equal(t, "release-notes", m.Slug)
	require.True(t, m.Draft)
	require.False(t, m.Unlisted)
	require.True(t, m.HasDate)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), m.Date.UTC())

	require.Equal(t, []TagRef{{Label: "releases"}, {Label: "Long Form", Permalink: "/long-form"}}, m.Tags)

	require.Len(t, m.Authors, 2)
	require.Equal(t, "jdoe", m.Authors[0].ID)
	require.False(t, m.Authors[0].Inline())
	require.True(t, m.Authors[1].Inline())
	require.Equal(t, "Guest Writer", m.Authors[1].Name)

	// Unknown keys survive untouched for the theme layer.
	require.Equal(t, 4, m.FreeForm["sidebar_position"])
}

func TestDecode_SingleAuthorString(t *testing.T) {
	m, err := Decode("a.md", []byte("author: jdoe\n"))
	require.NoError(t, err)
	require.Equal(t, []AuthorRef{{ID: "jdoe"}}, m.Authors)
}

func TestDecode_DateLayouts(t *testing.T) {
	cases := []struct {
		yaml string
		want time.Time
	}{
		{`date: "2024-03-01"`, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{`date: "2024-03-01 14:30"`, time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)},
		{`date: "2024-03-01T14:30:00Z"`, time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		m, err := Decode("a.md", []byte(tc.yaml))
		require.NoError(t, err, tc.yaml)
		require.True(t, m.HasDate, tc.yaml)
		require.Equal(t, tc.want, m.Date.UTC(), tc.yaml)
	}
}

func TestDecode_FailsClosed(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"title not a string", "title: [1, 2]"},
		{"draft not a bool", `draft: "yes"`},
		{"date garbage", `date: "next tuesday"`},
		{"tags not a list", "tags: releases"},
		{"tag number", "tags: [42]"},
		{"tag object missing label", "tags:\n  - permalink: /x"},
		{"tag object unknown key", "tags:\n  - label: x\n    color: red"},
		{"author number", "authors: [42]"},
		{"author object without identity", "authors:\n  - url: https://example.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode("blog/bad.md", []byte(tc.yaml))
			require.Error(t, err)
			require.True(t, berrors.IsCategory(err, berrors.CategoryValidation))
			require.Contains(t, err.Error(), "blog/bad.md")
		})
	}
}

func TestDecode_InvalidYAML_IsValidationError(t *testing.T) {
	_, err := Decode("blog/bad.md", []byte("title: [unclosed\n"))
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryValidation))
}

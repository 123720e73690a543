/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage persists the demo app between runs.
// The window state lives in <dir>/state.json, written transactionally with
// timestamped backups and read back field by field so a damaged or older
// file never costs more than the fields it got wrong.
// UI memory (window areas, scroll offsets, collapsing headers) lives in an
// embedded SQLite database at <dir>/memory.sqlite. It is disposable: a file
// that cannot be opened is moved to the backups folder and recreated.
package storage
